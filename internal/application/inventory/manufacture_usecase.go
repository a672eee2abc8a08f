package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// ManufactureUseCase registra una corrida de fabricación: es el único flujo
// que descuenta materia prima. La venta posterior del producto terminado solo
// descuenta el terminado; la fabricación no se revierte.
type ManufactureUseCase struct {
	productRepo repository.ProductRepository
	bom         *BOMUseCase
	sufficiency *SufficiencyUseCase
	registrar   *RegisterMovementUseCase
	drain       *DrainUseCase
}

// NewManufactureUseCase construye el caso de uso.
func NewManufactureUseCase(
	productRepo repository.ProductRepository,
	bom *BOMUseCase,
	sufficiency *SufficiencyUseCase,
	registrar *RegisterMovementUseCase,
	drain *DrainUseCase,
) *ManufactureUseCase {
	return &ManufactureUseCase{
		productRepo: productRepo,
		bom:         bom,
		sufficiency: sufficiency,
		registrar:   registrar,
		drain:       drain,
	}
}

// RegisterManufacture valida suficiencia de materia prima y, si alcanza,
// encola una salida por cada componente más la entrada del producto terminado,
// y drena de inmediato (este es el límite transaccional de la fabricación).
// Si falta materia prima devuelve los faltantes y ErrInsufficientStock sin
// encolar nada.
func (uc *ManufactureUseCase) RegisterManufacture(ctx context.Context, finishedProductID string, qty decimal.Decimal, actorID string) ([]dto.ShortfallDTO, error) {
	if finishedProductID == "" || qty.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(finishedProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.IsFinished() {
		return nil, domain.ErrInvalidInput
	}

	shortfalls, err := uc.sufficiency.CheckSufficiency(ctx, finishedProductID, qty)
	if err != nil {
		return nil, err
	}
	if len(shortfalls) > 0 {
		return shortfalls, domain.ErrInsufficientStock
	}

	lines, err := uc.bom.ExpandComponents(ctx, finishedProductID)
	if err != nil {
		return nil, err
	}

	reason := fmt.Sprintf("Fabricación de %s", product.Name)
	for _, line := range lines {
		uc.registrar.Register(entity.PendingOperation{
			Kind:      entity.MovementKindOUT,
			ProductID: line.RawMaterialID,
			Quantity:  line.QuantityPerUnit.Mul(qty),
			Reason:    reason,
			ActorID:   actorID,
		})
	}
	uc.registrar.Register(entity.PendingOperation{
		Kind:      entity.MovementKindIN,
		ProductID: finishedProductID,
		Quantity:  qty,
		Reason:    "Fabricación",
		ActorID:   actorID,
	})

	uc.drain.DrainAndApply(ctx)
	return nil, nil
}
