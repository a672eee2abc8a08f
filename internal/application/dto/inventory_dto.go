package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
// Es la entrada fire-and-forget que los flujos de venta/gasto invocan desde
// sus hooks post-commit.
type RegisterMovementRequest struct {
	Kind            string           `json:"kind"` // IN, OUT, ADJUST
	ProductID       string           `json:"product_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Reason          string           `json:"reason,omitempty"`
	OriginSaleID    string           `json:"origin_sale_id,omitempty"`
	OriginExpenseID string           `json:"origin_expense_id,omitempty"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"` // solo entradas por compra
}

// StockDTO estado actual de un producto en el ledger.
type StockDTO struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	Status         string          `json:"status"` // NORMAL, LOW, OUT_OF_STOCK
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
	Location       string          `json:"location,omitempty"`
	LastUpdatedAt  time.Time       `json:"last_updated_at"`
	LastUpdatedBy  string          `json:"last_updated_by,omitempty"`
}

// MovementDTO un movimiento del log de auditoría.
type MovementDTO struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Kind            string          `json:"kind"`
	DeltaQuantity   decimal.Decimal `json:"delta_quantity"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	Timestamp       time.Time       `json:"timestamp"`
	Reason          string          `json:"reason,omitempty"`
	ActorID         string          `json:"actor_id,omitempty"`
	OriginSaleID    string          `json:"origin_sale_id,omitempty"`
	OriginExpenseID string          `json:"origin_expense_id,omitempty"`
}

// ShortfallDTO faltante de materia prima detectado por el chequeo de suficiencia.
type ShortfallDTO struct {
	RawMaterialID string          `json:"raw_material_id"`
	MaterialName  string          `json:"material_name"`
	Available     decimal.Decimal `json:"available"`
	Required      decimal.Decimal `json:"required"`
	Unit          string          `json:"unit"`
	Message       string          `json:"message"`
}

// RecordConsumptionRequest body para POST /api/inventory/consumption.
type RecordConsumptionRequest struct {
	SaleID            string          `json:"sale_id"`
	SaleLineID        string          `json:"sale_line_id"`
	FinishedProductID string          `json:"finished_product_id"`
	Quantity          decimal.Decimal `json:"quantity"` // unidades vendidas del producto terminado
}

// ManufactureRequest body para POST /api/inventory/manufacture.
type ManufactureRequest struct {
	FinishedProductID string          `json:"finished_product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
}

// AddComponentRequest body para POST /api/products/:id/components.
type AddComponentRequest struct {
	RawMaterialID   string          `json:"raw_material_id"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Unit            string          `json:"unit"`
}

// BOMLineDTO una línea de la lista de materiales.
type BOMLineDTO struct {
	ID                string          `json:"id"`
	FinishedProductID string          `json:"finished_product_id"`
	RawMaterialID     string          `json:"raw_material_id"`
	QuantityPerUnit   decimal.Decimal `json:"quantity_per_unit"`
	Unit              string          `json:"unit"`
}
