package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto. Las materias primas solo entran por compras y salen por
// fabricación; los productos terminados se fabrican y se venden.
const (
	ProductTypeRawMaterial = "materia_prima"
	ProductTypeFinished    = "producto_terminado"
	ProductTypeMisc        = "miscelaneo"
)

// Product datos maestros de producto que consume el motor de inventario.
// El CRUD de catálogo vive en otro módulo; aquí solo se lee.
type Product struct {
	ID        string
	Name      string
	Type      string
	UnitCost  decimal.Decimal // costo promedio ponderado, actualizado por compras
	CreatedAt time.Time
}

// IsRawMaterial indica si el producto es materia prima.
func (p *Product) IsRawMaterial() bool { return p.Type == ProductTypeRawMaterial }

// IsFinished indica si el producto es terminado (tiene lista de componentes).
func (p *Product) IsFinished() bool { return p.Type == ProductTypeFinished }
