package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

var _ repository.ConsumptionRecordRepository = (*ConsumptionRecordRepo)(nil)

// ConsumptionRecordRepo registros de consumo de materia prima sobre
// PostgreSQL (usable con pool o tx). Solo análisis: nunca alimenta el ledger.
type ConsumptionRecordRepo struct {
	q Querier
}

// NewConsumptionRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRecordRepository(q Querier) *ConsumptionRecordRepo {
	return &ConsumptionRecordRepo{q: q}
}

const consumptionColumns = `id, sale_id, sale_line_id, finished_product_id, raw_material_id, quantity, ts`

// Create persiste un registro de consumo.
func (r *ConsumptionRecordRepo) Create(record *entity.ConsumptionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO consumption_records (` + consumptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.SaleID, record.SaleLineID, record.FinishedProductID,
		record.RawMaterialID, record.Quantity, record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create consumption record: %w", err)
	}
	return nil
}

// ListBySale consumos derivados de una venta.
func (r *ConsumptionRecordRepo) ListBySale(saleID string) ([]*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE sale_id = $1 ORDER BY ts ASC`
	return r.list(query, saleID)
}

// ListByRawMaterial consumos históricos de una materia prima, más recientes primero.
func (r *ConsumptionRecordRepo) ListByRawMaterial(rawMaterialID string, limit, offset int) ([]*entity.ConsumptionRecord, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption_records WHERE raw_material_id = $1 ORDER BY ts DESC LIMIT $2 OFFSET $3`
	return r.list(query, rawMaterialID, limit, offset)
}

func (r *ConsumptionRecordRepo) list(query string, args ...any) ([]*entity.ConsumptionRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	defer rows.Close()

	var list []*entity.ConsumptionRecord
	for rows.Next() {
		var c entity.ConsumptionRecord
		if err := rows.Scan(&c.ID, &c.SaleID, &c.SaleLineID, &c.FinishedProductID,
			&c.RawMaterialID, &c.Quantity, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
