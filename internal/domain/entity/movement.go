package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementKindIN     = "IN"     // entrada (compra, devolución, fabricación)
	MovementKindOUT    = "OUT"    // salida (venta, fabricación de componentes)
	MovementKindADJUST = "ADJUST" // ajuste absoluto: fija la cantidad al valor dado
)

// ValidMovementKind verifica que el tipo sea uno de los conocidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJUST:
		return true
	}
	return false
}

// Movement registro de auditoría de un cambio de cantidad aplicado, inmutable
// una vez creado. DeltaQuantity guarda lo solicitado sin recortar: una salida
// mayor al stock deja QuantityAfter en cero pero el delta pedido queda
// auditable. Los movimientos de un mismo producto quedan totalmente ordenados
// por Seq (orden de aplicación).
type Movement struct {
	ID              string
	Seq             int64
	ProductID       string
	Kind            string
	DeltaQuantity   decimal.Decimal
	QuantityBefore  decimal.Decimal
	QuantityAfter   decimal.Decimal
	Timestamp       time.Time
	Reason          string
	ActorID         string
	OriginSaleID    string // vacío si no proviene de una venta
	OriginExpenseID string // vacío si no proviene de una compra/gasto
}
