package inventory

import (
	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
)

// RegisterMovementUseCase punto de entrada fire-and-forget para los hooks
// post-commit de venta/gasto: adapta la petición a una operación pendiente y
// la encola. Nunca devuelve error: la cola descarta y loguea lo inválido.
type RegisterMovementUseCase struct {
	queue *Queue
}

// NewRegisterMovementUseCase construye el caso de uso sobre la cola diferida.
func NewRegisterMovementUseCase(queue *Queue) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{queue: queue}
}

// RegisterFromRequest encola la operación descrita por el request HTTP.
// actorID proviene del token del caller (hook de venta, gasto o ajuste manual).
func (uc *RegisterMovementUseCase) RegisterFromRequest(actorID string, in dto.RegisterMovementRequest) {
	uc.queue.Register(entity.PendingOperation{
		Kind:            in.Kind,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ActorID:         actorID,
		OriginSaleID:    in.OriginSaleID,
		OriginExpenseID: in.OriginExpenseID,
		UnitCost:        in.UnitCost,
	})
}

// Register encola una operación ya construida (uso interno: fabricación).
func (uc *RegisterMovementUseCase) Register(op entity.PendingOperation) {
	uc.queue.Register(op)
}
