package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación del ledger de stock sobre PostgreSQL
// (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockColumns = `product_id, quantity, unit, alert_threshold, location, last_updated_at, last_updated_by`

// Get obtiene el registro de stock de un producto; nil si nunca tuvo inventario.
func (r *StockRecordRepo) Get(productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock record")
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE); nil si no existe.
func (r *StockRecordRepo) GetForUpdate(productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock record for update")
}

// Upsert inserta o actualiza el registro de stock de un producto.
func (r *StockRecordRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, quantity, unit, alert_threshold, location, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              unit = EXCLUDED.unit,
		              alert_threshold = EXCLUDED.alert_threshold,
		              location = EXCLUDED.location,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by`
	updatedBy := (*string)(nil)
	if record.LastUpdatedBy != "" {
		updatedBy = &record.LastUpdatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.Quantity, record.Unit, record.AlertThreshold,
		record.Location, record.LastUpdatedAt, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// List lista los registros de stock con paginación, ordenados por producto.
func (r *StockRecordRepo) List(limit, offset int) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records ORDER BY product_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *StockRecordRepo) scanOne(row pgx.Row, op string) (*entity.StockRecord, error) {
	rec, err := scanStock(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var location, updatedBy *string
	if err := row.Scan(&rec.ProductID, &rec.Quantity, &rec.Unit, &rec.AlertThreshold,
		&location, &rec.LastUpdatedAt, &updatedBy); err != nil {
		return nil, err
	}
	if location != nil {
		rec.Location = *location
	}
	if updatedBy != nil {
		rec.LastUpdatedBy = *updatedBy
	}
	return &rec, nil
}
