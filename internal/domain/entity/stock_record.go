package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del stock. El estado nunca se persiste: es una función
// pura de (cantidad, umbral de alerta).
const (
	StockStatusNormal     = "NORMAL"
	StockStatusLow        = "LOW"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// DefaultAlertThreshold umbral de alerta al crear un registro de stock nuevo.
var DefaultAlertThreshold = decimal.NewFromInt(10)

// StockRecord stock autoritativo de un producto. Quantity nunca es negativa:
// solo cambia aplicando un Movement y las salidas se recortan en cero.
type StockRecord struct {
	ProductID      string
	Quantity       decimal.Decimal
	Unit           string // unidades, kg, g, l, ml, etc.
	AlertThreshold decimal.Decimal
	Location       string
	LastUpdatedAt  time.Time
	LastUpdatedBy  string
}

// Status clasifica el registro: sin stock, bajo o normal.
func (s *StockRecord) Status() string {
	if s.Quantity.LessThanOrEqual(decimal.Zero) {
		return StockStatusOutOfStock
	}
	if s.Quantity.LessThanOrEqual(s.AlertThreshold) {
		return StockStatusLow
	}
	return StockStatusNormal
}

// NewStockRecord crea un registro en cero para un producto sin inventario previo.
func NewStockRecord(productID string, now time.Time) *StockRecord {
	return &StockRecord{
		ProductID:      productID,
		Quantity:       decimal.Zero,
		Unit:           "unidades",
		AlertThreshold: DefaultAlertThreshold,
		LastUpdatedAt:  now,
	}
}
