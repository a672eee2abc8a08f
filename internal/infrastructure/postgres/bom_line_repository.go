package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jcastro/dulceria-api/internal/domain"
	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

var _ repository.BOMLineRepository = (*BOMLineRepo)(nil)

// BOMLineRepo lista de materiales sobre PostgreSQL (usable con pool o tx).
type BOMLineRepo struct {
	q Querier
}

// NewBOMLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMLineRepository(q Querier) *BOMLineRepo {
	return &BOMLineRepo{q: q}
}

// Create persiste una línea de la lista de materiales. La tabla tiene un
// único (finished_product_id, raw_material_id): repetir el componente es
// ErrDuplicate.
func (r *BOMLineRepo) Create(line *entity.BOMLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO bom_lines (id, finished_product_id, raw_material_id, quantity_per_unit, unit)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.FinishedProductID, line.RawMaterialID, line.QuantityPerUnit, line.Unit,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("componente %s ya existe en la lista: %w", line.RawMaterialID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create bom line: %w", err)
	}
	return nil
}

// ListByFinishedProduct devuelve las líneas del producto en orden de
// inserción; vacío si no tiene componentes.
func (r *BOMLineRepo) ListByFinishedProduct(finishedProductID string) ([]*entity.BOMLine, error) {
	query := `
		SELECT id, finished_product_id, raw_material_id, quantity_per_unit, unit
		FROM bom_lines WHERE finished_product_id = $1
		ORDER BY created_seq ASC`
	rows, err := r.q.Query(context.Background(), query, finishedProductID)
	if err != nil {
		return nil, fmt.Errorf("list bom lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.FinishedProductID, &l.RawMaterialID, &l.QuantityPerUnit, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
