package inventory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/pkg/logger"
)

// Queue cola de operaciones de inventario diferidas, compartida a nivel de
// proceso e inyectada explícitamente (no global). Los flujos de venta/gasto
// registran aquí sus mutaciones desde hooks post-commit en vez de tocar el
// ledger; el drenaje las aplica después en un lote atómico.
//
// Register nunca falla hacia el caller: un problema al encolar o loguear no
// puede abortar la transacción de negocio que lo originó.
type Queue struct {
	mu      sync.Mutex
	pending []entity.PendingOperation
	log     *logger.Logger
}

// NewQueue construye la cola con su logger best-effort.
func NewQueue(log *logger.Logger) *Queue {
	return &Queue{log: log}
}

// Register encola una operación pendiente. Las operaciones malformadas se
// descartan con un log de advertencia, nunca con un error al caller.
func (q *Queue) Register(op entity.PendingOperation) {
	if !entity.ValidMovementKind(op.Kind) || op.ProductID == "" {
		q.log.Warn().
			Str("kind", op.Kind).
			Str("product_id", op.ProductID).
			Msg("operación diferida descartada: tipo o producto inválido")
		return
	}
	if op.Kind != entity.MovementKindADJUST && op.Quantity.LessThanOrEqual(decimal.Zero) {
		q.log.Warn().
			Str("kind", op.Kind).
			Str("product_id", op.ProductID).
			Str("quantity", op.Quantity.String()).
			Msg("operación diferida descartada: cantidad no positiva")
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, op)
	q.mu.Unlock()

	q.log.Debug().
		Str("kind", op.Kind).
		Str("product_id", op.ProductID).
		Str("quantity", op.Quantity.String()).
		Str("reason", op.Reason).
		Msg("operación de inventario encolada")
}

// Len cantidad de operaciones pendientes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// swap intercambia atómicamente la lista pendiente por una vacía. Lo que se
// registre durante un drenaje cae en la lista nueva: ni se pierde ni se
// procesa dos veces.
func (q *Queue) swap() []entity.PendingOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	ops := q.pending
	q.pending = nil
	return ops
}

// requeueFront reinserta un lote completo al frente de la lista (posiblemente
// ya rellenada), preservando el orden de registro a través del reintento.
func (q *Queue) requeueFront(ops []entity.PendingOperation) {
	if len(ops) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(append(make([]entity.PendingOperation, 0, len(ops)+len(q.pending)), ops...), q.pending...)
}
