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

type manufactureFixture struct {
	*engine
	bomRepo *fakeBOMRepo
	uc      *inventory.ManufactureUseCase
}

func newManufactureFixture() *manufactureFixture {
	e := newEngine()
	bomRepo := newFakeBOMRepo()
	consRepo := newFakeConsumptionRepo()
	bom := inventory.NewBOMUseCase(e.prod, bomRepo, consRepo)
	sufficiency := inventory.NewSufficiencyUseCase(bomRepo, e.prod, e.guard)
	registrar := inventory.NewRegisterMovementUseCase(e.queue)
	uc := inventory.NewManufactureUseCase(e.prod, bom, sufficiency, registrar, e.drain)
	return &manufactureFixture{engine: e, bomRepo: bomRepo, uc: uc}
}

func (f *manufactureFixture) seedTorta(t *testing.T) {
	t.Helper()
	f.prod.seed("torta", "Torta de chocolate", entity.ProductTypeFinished, "0")
	f.prod.seed("harina", "Harina de trigo", entity.ProductTypeRawMaterial, "1")
	f.prod.seed("azucar", "Azúcar", entity.ProductTypeRawMaterial, "1")
	require.NoError(t, f.bomRepo.Create(&entity.BOMLine{ID: "l1", FinishedProductID: "torta", RawMaterialID: "harina", QuantityPerUnit: dec("2"), Unit: "kg"}))
	require.NoError(t, f.bomRepo.Create(&entity.BOMLine{ID: "l2", FinishedProductID: "torta", RawMaterialID: "azucar", QuantityPerUnit: dec("1"), Unit: "kg"}))
}

func TestRegisterManufacture_DescuentaMateriasYSumaTerminado(t *testing.T) {
	f := newManufactureFixture()
	f.seedTorta(t)
	f.stock.seed("harina", "10")
	f.stock.seed("azucar", "10")

	shortfalls, err := f.uc.RegisterManufacture(context.Background(), "torta", dec("3"), "user-1")
	require.NoError(t, err)
	assert.Empty(t, shortfalls)

	harina, _ := f.stock.Get("harina")
	azucar, _ := f.stock.Get("azucar")
	torta, _ := f.stock.Get("torta")
	assert.True(t, harina.Quantity.Equal(dec("4"))) // 10 − 2×3
	assert.True(t, azucar.Quantity.Equal(dec("7"))) // 10 − 1×3
	require.NotNil(t, torta, "el terminado se crea en forma perezosa")
	assert.True(t, torta.Quantity.Equal(dec("3")))

	// Un movimiento por componente más uno por el terminado, ya drenados.
	assert.Len(t, f.mov.all(), 3)
	assert.Equal(t, 0, f.queue.Len())

	movs, _ := f.mov.ListByProduct("harina", nil, nil, 0, 0)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementKindOUT, movs[0].Kind)
	assert.Equal(t, "Fabricación de Torta de chocolate", movs[0].Reason)
	assert.Equal(t, "user-1", movs[0].ActorID)
}

func TestRegisterManufacture_FaltanteBloqueaSinEncolarNada(t *testing.T) {
	f := newManufactureFixture()
	f.seedTorta(t)
	f.stock.seed("harina", "5") // se necesitan 6 para 3 tortas
	f.stock.seed("azucar", "10")

	shortfalls, err := f.uc.RegisterManufacture(context.Background(), "torta", dec("3"), "user-1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Len(t, shortfalls, 1)
	assert.Equal(t, "harina", shortfalls[0].RawMaterialID)

	// Nada encolado, nada aplicado: ni siquiera el azúcar que sí alcanzaba.
	assert.Equal(t, 0, f.queue.Len())
	assert.Empty(t, f.mov.all())
	azucar, _ := f.stock.Get("azucar")
	assert.True(t, azucar.Quantity.Equal(dec("10")))
}

func TestRegisterManufacture_ValidaProducto(t *testing.T) {
	f := newManufactureFixture()
	f.prod.seed("harina", "Harina", entity.ProductTypeRawMaterial, "1")
	ctx := context.Background()

	_, err := f.uc.RegisterManufacture(ctx, "fantasma", dec("1"), "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Solo los productos terminados se fabrican.
	_, err = f.uc.RegisterManufacture(ctx, "harina", dec("1"), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterManufacture(ctx, "harina", dec("0"), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
