package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
)

// ProductRepository puerto de lectura de datos maestros de producto.
// UpdateCost es la única escritura: el drenaje actualiza el costo promedio
// ponderado cuando una entrada por compra trae costo unitario.
type ProductRepository interface {
	// GetByID devuelve nil sin error si el producto no existe.
	GetByID(id string) (*entity.Product, error)
	UpdateCost(productID string, cost decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
}
