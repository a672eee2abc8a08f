package entity

import "github.com/shopspring/decimal"

// PendingOperation intención de mutación encolada, transitoria (en memoria,
// no sobrevive reinicios del proceso). Es propiedad exclusiva de la cola
// diferida hasta que el drenaje la aplica; el ledger nunca la ve antes.
type PendingOperation struct {
	Kind            string
	ProductID       string
	Quantity        decimal.Decimal
	Reason          string
	ActorID         string
	OriginSaleID    string
	OriginExpenseID string
	// UnitCost opcional en entradas por compra: dispara el recálculo del
	// costo promedio ponderado del producto.
	UnitCost *decimal.Decimal
}
