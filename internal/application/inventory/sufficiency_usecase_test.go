package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastro/dulceria-api/internal/application/inventory"
	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_ValidateAvailability(t *testing.T) {
	stock := newFakeStockRepo()
	stock.seed("harina", "8")
	stock.seed("agotado", "0")
	guard := inventory.NewGuard(stock)
	ctx := context.Background()

	tests := []struct {
		nombre     string
		productID  string
		required   string
		ok         bool
		disponible string
	}{
		{"suficiente", "harina", "5", true, "8"},
		{"exacto", "harina", "8", true, "8"},
		{"insuficiente", "harina", "10", false, "8"},
		{"stock en cero", "agotado", "1", false, "0"},
		{"sin registro de inventario", "fantasma", "1", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			ok, disponible, err := guard.ValidateAvailability(ctx, tt.productID, dec(tt.required))
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, disponible.Equal(dec(tt.disponible)), "disponible obtenido %s", disponible)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Chequeo de suficiencia
// ──────────────────────────────────────────────────────────────────────────────

func newSufficiencyFixture() (*inventory.SufficiencyUseCase, *fakeStockRepo, *fakeProductRepo, *fakeBOMRepo) {
	stock := newFakeStockRepo()
	prod := newFakeProductRepo()
	bom := newFakeBOMRepo()
	uc := inventory.NewSufficiencyUseCase(bom, prod, inventory.NewGuard(stock))
	return uc, stock, prod, bom
}

func TestCheckSufficiency_ReportaUnFaltantePorMateriaInsuficiente(t *testing.T) {
	uc, stock, prod, bom := newSufficiencyFixture()
	prod.seed("torta", "Torta de chocolate", entity.ProductTypeFinished, "0")
	prod.seed("harina", "Harina de trigo", entity.ProductTypeRawMaterial, "1")
	prod.seed("azucar", "Azúcar", entity.ProductTypeRawMaterial, "1")
	require.NoError(t, bom.Create(&entity.BOMLine{ID: "l1", FinishedProductID: "torta", RawMaterialID: "harina", QuantityPerUnit: dec("2"), Unit: "kg"}))
	require.NoError(t, bom.Create(&entity.BOMLine{ID: "l2", FinishedProductID: "torta", RawMaterialID: "azucar", QuantityPerUnit: dec("1"), Unit: "kg"}))
	stock.seed("harina", "8") // se necesitan 10 para 5 tortas
	stock.seed("azucar", "20")

	shortfalls, err := uc.CheckSufficiency(context.Background(), "torta", dec("5"))
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)

	s := shortfalls[0]
	assert.Equal(t, "harina", s.RawMaterialID)
	assert.Equal(t, "Harina de trigo", s.MaterialName)
	assert.True(t, s.Available.Equal(dec("8")))
	assert.True(t, s.Required.Equal(dec("10")))
	assert.Equal(t, "kg", s.Unit)
	assert.Equal(t,
		`Stock insuficiente de materia prima "Harina de trigo". Disponible: 8 kg, Necesario: 10 kg`,
		s.Message)
}

func TestCheckSufficiency_SinRegistroDeStockEsFaltante(t *testing.T) {
	uc, _, prod, bom := newSufficiencyFixture()
	prod.seed("torta", "Torta", entity.ProductTypeFinished, "0")
	require.NoError(t, bom.Create(&entity.BOMLine{ID: "l1", FinishedProductID: "torta", RawMaterialID: "harina", QuantityPerUnit: dec("1"), Unit: "kg"}))

	shortfalls, err := uc.CheckSufficiency(context.Background(), "torta", dec("1"))
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)
	assert.True(t, shortfalls[0].Available.IsZero())
	// Sin fila de producto, el mensaje cae al identificador.
	assert.Equal(t, "harina", shortfalls[0].MaterialName)
}

func TestCheckSufficiency_BOMVacioSiempreAlcanza(t *testing.T) {
	uc, _, prod, _ := newSufficiencyFixture()
	prod.seed("torta", "Torta", entity.ProductTypeFinished, "0")

	shortfalls, err := uc.CheckSufficiency(context.Background(), "torta", dec("100"))
	require.NoError(t, err)
	assert.Empty(t, shortfalls)
}

func TestCheckSufficiency_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := newSufficiencyFixture()

	_, err := uc.CheckSufficiency(context.Background(), "", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CheckSufficiency(context.Background(), "torta", dec("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
