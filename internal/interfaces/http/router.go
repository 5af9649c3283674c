package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias de los handlers para el registro de rutas.
type RouterDeps struct {
	JWTSecret        string
	AuthHandler      *AuthHandler
	ProductHandler   *ProductHandler
	PartyHandler     *PartyHandler
	InventoryHandler *InventoryHandler
	DocumentHandler  *DocumentHandler
}

// SetupRoutes registra todas las rutas de la API. Solo auth es pública; el
// resto exige Bearer Token.
func SetupRoutes(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.AuthHandler.Register)
	authGroup.Post("/login", deps.AuthHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogWriter := RequireRole("admin", "bodeguero")

	products := protected.Group("/products")
	products.Post("/", catalogWriter, deps.ProductHandler.Create)
	products.Get("/", deps.ProductHandler.List)
	products.Get("/sku/:sku", deps.ProductHandler.GetBySKU)
	products.Get("/:id", deps.ProductHandler.GetByID)
	products.Put("/:id", catalogWriter, deps.ProductHandler.Update)

	protected.Get("/auth/me", deps.AuthHandler.Me)

	customers := protected.Group("/customers")
	customers.Post("/", deps.PartyHandler.CreateCustomer)
	customers.Get("/", deps.PartyHandler.ListCustomers)
	customers.Get("/:id", deps.PartyHandler.GetCustomer)
	customers.Put("/:id", deps.PartyHandler.UpdateCustomer)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", deps.PartyHandler.CreateSupplier)
	suppliers.Get("/", deps.PartyHandler.ListSuppliers)
	suppliers.Get("/:id", deps.PartyHandler.GetSupplier)
	suppliers.Put("/:id", deps.PartyHandler.UpdateSupplier)

	inventoryGroup := protected.Group("/inventory")
	inventoryGroup.Post("/movements", catalogWriter, deps.InventoryHandler.RegisterAdjustment)
	inventoryGroup.Post("/movements/:id/reverse", catalogWriter, deps.InventoryHandler.ReverseMovement)
	inventoryGroup.Get("/products/:id/movements", deps.InventoryHandler.ListMovements)
	inventoryGroup.Get("/products/:id/quantity", deps.InventoryHandler.CurrentQuantity)
	inventoryGroup.Get("/products/:id/projection", deps.InventoryHandler.VerifyProjection)

	documents := protected.Group("/documents")
	documents.Post("/", deps.DocumentHandler.Create)
	documents.Get("/", deps.DocumentHandler.List)
	documents.Get("/ref/:reference", deps.DocumentHandler.GetByReference)
	documents.Get("/:id", deps.DocumentHandler.GetByID)
	documents.Put("/:id", deps.DocumentHandler.Update)
	documents.Post("/:id/transition", deps.DocumentHandler.Transition)
	documents.Post("/:id/cancel", deps.DocumentHandler.Cancel)

	protected.Post("/expenses", deps.DocumentHandler.CreateExpense)
	protected.Get("/sequences", RequireRole("admin"), deps.DocumentHandler.ListSequences)
}
