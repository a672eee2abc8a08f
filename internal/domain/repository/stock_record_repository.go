package repository

import "github.com/jcastro/dulceria-api/internal/domain/entity"

// StockRecordRepository puerto de persistencia del ledger de stock.
// Upsert es el único escritor y solamente lo invoca el drenaje de la cola
// diferida dentro de su transacción.
type StockRecordRepository interface {
	// Get devuelve nil sin error si el producto no tiene registro.
	Get(productID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(productID string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	List(limit, offset int) ([]*entity.StockRecord, error)
}
