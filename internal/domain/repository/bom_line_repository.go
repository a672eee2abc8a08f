package repository

import "github.com/jcastro/dulceria-api/internal/domain/entity"

// BOMLineRepository puerto de persistencia de la lista de materiales.
type BOMLineRepository interface {
	Create(line *entity.BOMLine) error
	// ListByFinishedProduct devuelve las líneas en orden de inserción;
	// vacío si el producto no tiene componentes.
	ListByFinishedProduct(finishedProductID string) ([]*entity.BOMLine, error)
}
