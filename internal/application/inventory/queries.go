package inventory

import (
	"context"
	"time"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// QueryUseCase camino de solo lectura del ledger: stock actual con estado
// derivado e historial de movimientos.
type QueryUseCase struct {
	stockRepo repository.StockRecordRepository
	movRepo   repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(stockRepo repository.StockRecordRepository, movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// GetStock devuelve el estado actual de un producto; ErrNotFound si nunca
// tuvo inventario.
func (uc *QueryUseCase) GetStock(ctx context.Context, productID string) (*dto.StockDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	record, err := uc.stockRepo.Get(productID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	d := toStockDTO(record)
	return &d, nil
}

// ListStock lista los registros de stock con su estado derivado, para las
// pantallas de alertas de quiebre del módulo de reportes.
func (uc *QueryUseCase) ListStock(ctx context.Context, page dto.PageRequest) ([]dto.StockDTO, error) {
	page.DefaultPage()
	records, err := uc.stockRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toStockDTO(r))
	}
	return out, nil
}

// GetMovementHistory historial de movimientos de un producto en orden de
// aplicación (el más reciente al final), con rango de fechas opcional.
func (uc *QueryUseCase) GetMovementHistory(ctx context.Context, productID string, from, to *time.Time, page dto.PageRequest) ([]dto.MovementDTO, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:              m.ID,
			ProductID:       m.ProductID,
			Kind:            m.Kind,
			DeltaQuantity:   m.DeltaQuantity,
			QuantityBefore:  m.QuantityBefore,
			QuantityAfter:   m.QuantityAfter,
			Timestamp:       m.Timestamp,
			Reason:          m.Reason,
			ActorID:         m.ActorID,
			OriginSaleID:    m.OriginSaleID,
			OriginExpenseID: m.OriginExpenseID,
		})
	}
	return out, nil
}

func toStockDTO(r *entity.StockRecord) dto.StockDTO {
	return dto.StockDTO{
		ProductID:      r.ProductID,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		Status:         r.Status(),
		AlertThreshold: r.AlertThreshold,
		Location:       r.Location,
		LastUpdatedAt:  r.LastUpdatedAt,
		LastUpdatedBy:  r.LastUpdatedBy,
	}
}
