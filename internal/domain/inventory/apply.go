package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
)

// Apply calcula la cantidad resultante de aplicar una mutación (servicio de
// dominio, puro). Reglas:
//
//	IN:     after = before + delta
//	OUT:    after = max(0, before - delta)  — recorte silencioso en cero
//	ADJUST: after = delta                   — fija el valor absoluto
//
// El resultado nunca es negativo; un ADJUST negativo también se recorta.
func Apply(before decimal.Decimal, kind string, delta decimal.Decimal) decimal.Decimal {
	var after decimal.Decimal
	switch kind {
	case entity.MovementKindIN:
		after = before.Add(delta)
	case entity.MovementKindOUT:
		after = before.Sub(delta)
	case entity.MovementKindADJUST:
		after = delta
	default:
		return before
	}
	if after.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return after
}
