package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo log de movimientos sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay UPDATE ni DELETE. applied_seq es un
// BIGSERIAL que da el orden total de aplicación, independiente del timestamp
// (un lote drenado comparte el mismo instante).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento y devuelve en movement.Seq el orden de
// aplicación asignado.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, kind, delta_quantity, quantity_before, quantity_after, ts, reason, actor_id, origin_sale_id, origin_expense_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING applied_seq`
	actorID := nullable(movement.ActorID)
	originSale := nullable(movement.OriginSaleID)
	originExpense := nullable(movement.OriginExpenseID)
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.ProductID, movement.Kind,
		movement.DeltaQuantity, movement.QuantityBefore, movement.QuantityAfter,
		movement.Timestamp, movement.Reason, actorID, originSale, originExpense,
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto en orden de aplicación
// (el más reciente al final), con rango de fechas opcional.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, applied_seq, product_id, kind, delta_quantity, quantity_before, quantity_after, ts, reason, actor_id, origin_sale_id, origin_expense_id
		FROM movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY applied_seq ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var actorID, originSale, originExpense *string
		if err := rows.Scan(&m.ID, &m.Seq, &m.ProductID, &m.Kind,
			&m.DeltaQuantity, &m.QuantityBefore, &m.QuantityAfter,
			&m.Timestamp, &m.Reason, &actorID, &originSale, &originExpense); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if actorID != nil {
			m.ActorID = *actorID
		}
		if originSale != nil {
			m.OriginSaleID = *originSale
		}
		if originExpense != nil {
			m.OriginExpenseID = *originExpense
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByProduct cantidad total de movimientos de un producto.
func (r *MovementRepo) CountByProduct(productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// nullable devuelve nil para strings vacíos (columnas NULL en vez de '').
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
