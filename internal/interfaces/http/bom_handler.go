package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/application/inventory"
	"github.com/jcastro/dulceria-api/internal/domain"
)

// BOMHandler maneja la lista de materiales y el consumo derivado de ventas (protegido).
type BOMHandler struct {
	bom *inventory.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(bom *inventory.BOMUseCase) *BOMHandler {
	return &BOMHandler{bom: bom}
}

// ListComponents godoc
// @Summary      Componentes de un producto terminado
// @Description  Lista vacía si el producto no existe, no es terminado o no tiene BOM.
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto terminado"
// @Success      200  {array}  dto.BOMLineDTO
// @Router       /api/products/{product_id}/components [get]
func (h *BOMHandler) ListComponents(c *fiber.Ctx) error {
	lines, err := h.bom.ExpandComponents(c.Context(), c.Params("product_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BOMLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.BOMLineDTO{
			ID:                l.ID,
			FinishedProductID: l.FinishedProductID,
			RawMaterialID:     l.RawMaterialID,
			QuantityPerUnit:   l.QuantityPerUnit,
			Unit:              l.Unit,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "components": out})
}

// AddComponent godoc
// @Summary      Agregar un componente a la lista de materiales
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id  path  string                   true  "ID del producto terminado"
// @Param        body        body  dto.AddComponentRequest  true  "raw_material_id, quantity_per_unit, unit"
// @Success      201  {object}  dto.BOMLineDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{product_id}/components [post]
func (h *BOMHandler) AddComponent(c *fiber.Ctx) error {
	var in dto.AddComponentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	line, err := h.bom.AddComponent(c.Context(), in, c.Params("product_id"))
	if err != nil {
		if errors.Is(err, domain.ErrSelfReference) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SELF_REFERENCE", Message: "un producto no puede ser su propio componente"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "componente ya existe en la lista"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BOMLineDTO{
		ID:                line.ID,
		FinishedProductID: line.FinishedProductID,
		RawMaterialID:     line.RawMaterialID,
		QuantityPerUnit:   line.QuantityPerUnit,
		Unit:              line.Unit,
	})
}

// RecordConsumption godoc
// @Summary      Registrar consumo de materia prima derivado de una venta
// @Description  Solo análisis: no toca el ledger ni la cola diferida.
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsumptionRequest  true  "sale_id, sale_line_id, finished_product_id, quantity"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/consumption [post]
func (h *BOMHandler) RecordConsumption(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.bom.RecordConsumption(c.Context(), in.SaleID, in.SaleLineID, in.FinishedProductID, in.Quantity, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "consumo registrado"})
}
