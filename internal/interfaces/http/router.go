package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastro/dulceria-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterMovement *inventory.RegisterMovementUseCase
	Drain            *inventory.DrainUseCase
	Queries          *inventory.QueryUseCase
	Sufficiency      *inventory.SufficiencyUseCase
	Manufacture      *inventory.ManufactureUseCase
	BOM              *inventory.BOMUseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todo el motor de inventario es
// protegido: el actor_id de cada movimiento sale del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Drain, deps.Queries, deps.Sufficiency, deps.Manufacture)
	bomHandler := NewBOMHandler(deps.BOM)

	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements/:product_id", inventoryHandler.GetMovements)
	invGroup.Get("/stock", inventoryHandler.ListStock)
	invGroup.Get("/stock/:product_id", inventoryHandler.GetStock)
	invGroup.Get("/sufficiency/:product_id", inventoryHandler.CheckSufficiency)
	invGroup.Post("/manufacture", RequireRole("admin", "bodeguero"), inventoryHandler.Manufacture)
	invGroup.Post("/consumption", bomHandler.RecordConsumption)

	products := protected.Group("/products")
	products.Get("/:product_id/components", bomHandler.ListComponents)
	products.Post("/:product_id/components", RequireRole("admin"), bomHandler.AddComponent)
}
