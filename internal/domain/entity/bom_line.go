package entity

import "github.com/shopspring/decimal"

// BOMLine línea de la lista de materiales: cuánta materia prima requiere una
// unidad de producto terminado. La autorreferencia está prohibida.
type BOMLine struct {
	ID                string
	FinishedProductID string
	RawMaterialID     string
	QuantityPerUnit   decimal.Decimal
	Unit              string
}
