package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/application/dto"
	"github.com/jcastro/dulceria-api/internal/application/inventory"
	"github.com/jcastro/dulceria-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario (protegido).
type InventoryHandler struct {
	registrar   *inventory.RegisterMovementUseCase
	drain       *inventory.DrainUseCase
	queries     *inventory.QueryUseCase
	sufficiency *inventory.SufficiencyUseCase
	manufacture *inventory.ManufactureUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	registrar *inventory.RegisterMovementUseCase,
	drain *inventory.DrainUseCase,
	queries *inventory.QueryUseCase,
	sufficiency *inventory.SufficiencyUseCase,
	manufacture *inventory.ManufactureUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		registrar:   registrar,
		drain:       drain,
		queries:     queries,
		sufficiency: sufficiency,
		manufacture: manufacture,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario (diferido)
// @Description  Encola la operación y la aplica en el próximo drenaje.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "kind (IN|OUT|ADJUST), product_id, quantity, reason, origin_sale_id, origin_expense_id, unit_cost (entradas por compra)"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El encolado es fire-and-forget: lo inválido se descarta con warning y el
	// caller igual recibe 202 (mismo contrato que los hooks internos). El
	// drenaje corre a continuación, este request ya es el post-commit.
	h.registrar.RegisterFromRequest(GetUserID(c), in)
	h.drain.DrainAndApply(c.Context())
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "operación encolada"})
}

// GetStock godoc
// @Summary      Stock actual de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{product_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	stock, err := h.queries.GetStock(c.Context(), c.Params("product_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto sin inventario"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stock)
}

// ListStock godoc
// @Summary      Listar registros de stock con estado derivado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.StockDTO
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.queries.ListStock(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "stock": list})
}

// GetMovements godoc
// @Summary      Historial de movimientos de un producto
// @Description  Orden de aplicación, el más reciente al final. Rango de fechas opcional (RFC 3339).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true   "ID del producto"
// @Param        from        query  string  false  "fecha inicial RFC 3339"
// @Param        to          query  string  false  "fecha final RFC 3339"
// @Success      200  {array}  dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{product_id} [get]
func (h *InventoryHandler) GetMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
	}
	movs, err := h.queries.GetMovementHistory(c.Context(), c.Params("product_id"), from, to, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(movs), "movements": movs})
}

// CheckSufficiency godoc
// @Summary      Chequeo de suficiencia de materia prima
// @Description  Pre-vuelo de fabricación: lista los faltantes; vacía significa que alcanza.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path   string  true  "ID del producto terminado"
// @Param        quantity    query  string  true  "unidades a fabricar"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/sufficiency/{product_id} [get]
func (h *InventoryHandler) CheckSufficiency(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválida"})
	}
	shortfalls, err := h.sufficiency.CheckSufficiency(c.Context(), c.Params("product_id"), qty)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"sufficient": len(shortfalls) == 0, "shortfalls": shortfalls})
}

// Manufacture godoc
// @Summary      Registrar una corrida de fabricación
// @Description  Valida suficiencia; si alcanza descuenta las materias primas y suma el terminado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManufactureRequest  true  "finished_product_id, quantity"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  map[string]any
// @Router       /api/inventory/manufacture [post]
func (h *InventoryHandler) Manufacture(c *fiber.Ctx) error {
	var in dto.ManufactureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shortfalls, err := h.manufacture.RegisterManufacture(c.Context(), in.FinishedProductID, in.Quantity, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":       "INSUFFICIENT_STOCK",
				"shortfalls": shortfalls,
			})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "fabricación registrada"})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
