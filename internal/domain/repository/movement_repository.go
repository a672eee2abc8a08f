package repository

import (
	"time"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia del log de movimientos (append-only).
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// ListByProduct devuelve los movimientos en orden de aplicación
	// (el más reciente al final), con rango de fechas opcional.
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	CountByProduct(productID string) (int64, error)
}
