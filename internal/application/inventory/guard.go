package inventory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// Guard serializa las secuencias leer-validar-escribir sobre el ledger con un
// único lock a nivel de proceso. Se inyecta (no es un global) para poder
// levantar instancias independientes en tests.
//
// ValidateAvailability solo garantiza una foto consistente al momento de la
// lectura, no una reserva: el stock puede cambiar apenas se libera el lock.
type Guard struct {
	mu        sync.Mutex
	stockRepo repository.StockRecordRepository
}

// NewGuard construye el guard sobre el repositorio de stock (pool, no tx).
func NewGuard(stockRepo repository.StockRecordRepository) *Guard {
	return &Guard{stockRepo: stockRepo}
}

// Lock toma el lock de inventario. El drenaje lo mantiene durante todo el
// lote para que ninguna validación lea un estado a medio aplicar.
func (g *Guard) Lock() { g.mu.Lock() }

// Unlock libera el lock de inventario.
func (g *Guard) Unlock() { g.mu.Unlock() }

// ValidateAvailability verifica bajo el lock si hay stock suficiente del
// producto. Devuelve (ok, cantidad disponible). Sin registro de inventario la
// disponibilidad es cero.
func (g *Guard) ValidateAvailability(ctx context.Context, productID string, required decimal.Decimal) (bool, decimal.Decimal, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	record, err := g.stockRepo.Get(productID)
	if err != nil {
		return false, decimal.Zero, err
	}
	if record == nil {
		return false, decimal.Zero, nil
	}
	if record.Quantity.LessThanOrEqual(decimal.Zero) {
		return false, record.Quantity, nil
	}
	if record.Quantity.LessThan(required) {
		return false, record.Quantity, nil
	}
	return true, record.Quantity, nil
}
