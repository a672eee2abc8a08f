package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	domaininv "github.com/jcastro/dulceria-api/internal/domain/inventory"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
	"github.com/jcastro/dulceria-api/pkg/logger"
)

// DrainUseCase consume la cola diferida y aplica el lote al ledger en una
// sola transacción. Se invoca síncronamente después de cada commit de negocio
// y/o desde el ticker periódico de cmd/api.
type DrainUseCase struct {
	queue    *Queue
	guard    *Guard
	txRunner TxRunner
	log      *logger.Logger

	drainMu sync.Mutex // un solo drenaje activo a la vez
	retries int        // drenajes fallidos consecutivos del mismo lote
}

// NewDrainUseCase construye el caso de uso de drenaje.
func NewDrainUseCase(queue *Queue, guard *Guard, txRunner TxRunner, log *logger.Logger) *DrainUseCase {
	return &DrainUseCase{queue: queue, guard: guard, txRunner: txRunner, log: log}
}

// DrainAndApply drena todas las operaciones pendientes y las aplica:
//
//  1. Intercambia atómicamente la lista pendiente por una vacía.
//  2. Agrupa por producto preservando el orden de registro dentro de cada uno.
//  3. Por producto: obtiene (o crea en cero) su registro de stock una sola
//     vez y aplica cada operación en orden, generando un Movement por cada una.
//  4. Commit de todo el lote como una transacción.
//  5. Si el commit falla: rollback, log y reinserción del lote completo al
//     frente de la cola para el próximo intento; ninguna operación se pierde.
//
// El Guard se mantiene tomado durante todo el lote para que ninguna lectura
// de disponibilidad se intercale con una aplicación a medias.
func (uc *DrainUseCase) DrainAndApply(ctx context.Context) {
	uc.drainMu.Lock()
	defer uc.drainMu.Unlock()

	ops := uc.queue.swap()
	if len(ops) == 0 {
		return
	}

	uc.guard.Lock()
	defer uc.guard.Unlock()

	// Agrupar por producto preservando orden de registro intra-producto.
	// El orden entre productos sigue la primera aparición de cada uno.
	productOrder := make([]string, 0, len(ops))
	byProduct := make(map[string][]entity.PendingOperation, len(ops))
	for _, op := range ops {
		if _, seen := byProduct[op.ProductID]; !seen {
			productOrder = append(productOrder, op.ProductID)
		}
		byProduct[op.ProductID] = append(byProduct[op.ProductID], op)
	}

	now := time.Now().UTC()
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, productID := range productOrder {
			if err := uc.applyProduct(stockRepo, movRepo, productRepo, productID, byProduct[productID], now); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		// Rollback ya ocurrió dentro del TxRunner. Reencolar al frente y
		// reintentar en el próximo drenaje; el error no se propaga al
		// request original porque el drenaje está desacoplado de él.
		uc.queue.requeueFront(ops)
		uc.retries++
		uc.log.Error().
			Err(err).
			Int("operations", len(ops)).
			Int("consecutive_failures", uc.retries).
			Msg("drenaje de inventario falló; lote reencolado al frente")
		return
	}

	if uc.retries > 0 {
		uc.log.Info().Int("after_failures", uc.retries).Msg("drenaje de inventario recuperado")
	}
	uc.retries = 0
	uc.log.Info().
		Int("operations", len(ops)).
		Int("products", len(productOrder)).
		Msg("lote de inventario aplicado")
}

// applyProduct aplica las operaciones de un producto en orden de registro,
// generando exactamente un movimiento por operación.
func (uc *DrainUseCase) applyProduct(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	ops []entity.PendingOperation,
	now time.Time,
) error {
	record, err := stockRepo.GetForUpdate(productID)
	if err != nil {
		return err
	}
	if record == nil {
		record = entity.NewStockRecord(productID, now)
	}

	for _, op := range ops {
		before := record.Quantity
		record.Quantity = domaininv.Apply(before, op.Kind, op.Quantity)
		record.LastUpdatedAt = now
		if op.ActorID != "" {
			record.LastUpdatedBy = op.ActorID
		}

		mov := &entity.Movement{
			ID:              uuid.New().String(),
			ProductID:       productID,
			Kind:            op.Kind,
			DeltaQuantity:   op.Quantity,
			QuantityBefore:  before,
			QuantityAfter:   record.Quantity,
			Timestamp:       now,
			Reason:          op.Reason,
			ActorID:         op.ActorID,
			OriginSaleID:    op.OriginSaleID,
			OriginExpenseID: op.OriginExpenseID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		// Entrada por compra con costo unitario: recalcular costo promedio
		// ponderado del producto.
		if op.Kind == entity.MovementKindIN && op.UnitCost != nil {
			product, err := productRepo.GetByID(productID)
			if err != nil {
				return err
			}
			if product != nil {
				newCost := domaininv.CostCalculator(before, product.UnitCost, op.Quantity, *op.UnitCost)
				if err := productRepo.UpdateCost(productID, newCost); err != nil {
					return err
				}
			}
		}
	}

	return stockRepo.Upsert(record)
}
