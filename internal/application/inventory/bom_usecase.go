package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// BOMUseCase resuelve la lista de materiales de un producto terminado y
// registra el consumo derivado de sus ventas. El consumo es solo analítico:
// las materias primas se descuentan al fabricar, no al vender, y una venta
// cancelada tampoco las devuelve (la fabricación es irreversible).
type BOMUseCase struct {
	productRepo     repository.ProductRepository
	bomRepo         repository.BOMLineRepository
	consumptionRepo repository.ConsumptionRecordRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(
	productRepo repository.ProductRepository,
	bomRepo repository.BOMLineRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) *BOMUseCase {
	return &BOMUseCase{productRepo: productRepo, bomRepo: bomRepo, consumptionRepo: consumptionRepo}
}

// ExpandComponents devuelve las líneas BOM del producto, en orden. Un producto
// inexistente, no terminado o sin componentes expande a lista vacía: la falta
// de datos BOM no es un error.
func (uc *BOMUseCase) ExpandComponents(ctx context.Context, finishedProductID string) ([]*entity.BOMLine, error) {
	product, err := uc.productRepo.GetByID(finishedProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsFinished() {
		return []*entity.BOMLine{}, nil
	}
	lines, err := uc.bomRepo.ListByFinishedProduct(finishedProductID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []*entity.BOMLine{}
	}
	return lines, nil
}

// RecordConsumption escribe un registro de consumo por cada línea BOM del
// producto vendido, con cantidad = cantidad_por_unidad * cantidad_vendida.
// No encola ninguna mutación del ledger.
func (uc *BOMUseCase) RecordConsumption(ctx context.Context, saleID, saleLineID, finishedProductID string, soldQty decimal.Decimal, actorID string) error {
	if saleID == "" || saleLineID == "" || finishedProductID == "" || soldQty.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	lines, err := uc.ExpandComponents(ctx, finishedProductID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, line := range lines {
		rec := &entity.ConsumptionRecord{
			ID:                uuid.New().String(),
			SaleID:            saleID,
			SaleLineID:        saleLineID,
			FinishedProductID: finishedProductID,
			RawMaterialID:     line.RawMaterialID,
			Quantity:          line.QuantityPerUnit.Mul(soldQty),
			Timestamp:         now,
		}
		if err := uc.consumptionRepo.Create(rec); err != nil {
			return err
		}
	}
	return nil
}

// AddComponent agrega una línea a la lista de materiales de un producto
// terminado. Rechaza la autorreferencia y cantidades no positivas.
func (uc *BOMUseCase) AddComponent(ctx context.Context, in dto.AddComponentRequest, finishedProductID string) (*entity.BOMLine, error) {
	if finishedProductID == "" || in.RawMaterialID == "" || in.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if finishedProductID == in.RawMaterialID {
		return nil, domain.ErrSelfReference
	}
	product, err := uc.productRepo.GetByID(finishedProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	line := &entity.BOMLine{
		ID:                uuid.New().String(),
		FinishedProductID: finishedProductID,
		RawMaterialID:     in.RawMaterialID,
		QuantityPerUnit:   in.QuantityPerUnit,
		Unit:              in.Unit,
	}
	if line.Unit == "" {
		line.Unit = "unidades"
	}
	if err := uc.bomRepo.Create(line); err != nil {
		return nil, err
	}
	return line, nil
}
