package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConsumptionRecord consumo de materia prima derivado de la venta de un
// producto terminado. Puramente informativo para análisis: nunca retroalimenta
// el stock, porque las materias primas se descontaron al fabricar.
type ConsumptionRecord struct {
	ID                string
	SaleID            string
	SaleLineID        string
	FinishedProductID string
	RawMaterialID     string
	Quantity          decimal.Decimal // cantidad_por_unidad * cantidad_vendida
	Timestamp         time.Time
}
