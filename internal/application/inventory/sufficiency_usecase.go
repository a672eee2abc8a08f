package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// SufficiencyUseCase chequeo de pre-vuelo, solo lectura: ¿alcanza la materia
// prima para fabricar la cantidad pedida de un producto terminado? No emite
// mutaciones ni registros en la cola.
type SufficiencyUseCase struct {
	bomRepo     repository.BOMLineRepository
	productRepo repository.ProductRepository
	guard       *Guard
}

// NewSufficiencyUseCase construye el caso de uso.
func NewSufficiencyUseCase(
	bomRepo repository.BOMLineRepository,
	productRepo repository.ProductRepository,
	guard *Guard,
) *SufficiencyUseCase {
	return &SufficiencyUseCase{bomRepo: bomRepo, productRepo: productRepo, guard: guard}
}

// CheckSufficiency devuelve un faltante por cada materia prima insuficiente;
// lista vacía significa que alcanza. Cada lectura de stock ocurre bajo el
// Guard: es una foto consistente al momento del chequeo, no una reserva.
func (uc *SufficiencyUseCase) CheckSufficiency(ctx context.Context, finishedProductID string, requested decimal.Decimal) ([]dto.ShortfallDTO, error) {
	if finishedProductID == "" || requested.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lines, err := uc.bomRepo.ListByFinishedProduct(finishedProductID)
	if err != nil {
		return nil, err
	}

	shortfalls := []dto.ShortfallDTO{}
	for _, line := range lines {
		required := line.QuantityPerUnit.Mul(requested)

		ok, available, err := uc.guard.ValidateAvailability(ctx, line.RawMaterialID, required)
		if err != nil {
			return nil, err
		}
		if ok {
			continue
		}

		name := line.RawMaterialID
		if material, err := uc.productRepo.GetByID(line.RawMaterialID); err == nil && material != nil {
			name = material.Name
		}

		shortfalls = append(shortfalls, dto.ShortfallDTO{
			RawMaterialID: line.RawMaterialID,
			MaterialName:  name,
			Available:     available,
			Required:      required,
			Unit:          line.Unit,
			Message: fmt.Sprintf(
				"Stock insuficiente de materia prima %q. Disponible: %s %s, Necesario: %s %s",
				name, available.String(), line.Unit, required.String(), line.Unit,
			),
		})
	}
	return shortfalls, nil
}
