package inventory

import (
	"context"

	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El drenaje de la cola diferida lo usa para
// aplicar todo el lote (upserts de stock + inserts de movimientos +
// actualización de costos) como un solo commit atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
