package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-cart/internal/application/cart"
	"github.com/jhoicas/storefront-cart/internal/application/usecase"
	"github.com/jhoicas/storefront-cart/internal/i18n"
	"github.com/jhoicas/storefront-cart/pkg/logger"
)

// CartRouterDeps dependencias de la API del carrito.
type CartRouterDeps struct {
	Carts        *cart.Registry
	Translator   *i18n.Translator
	Logger       *logger.Logger
	SecureCookie bool
}

// CartRouter registra las rutas del carrito bajo /api/cart.
func CartRouter(app *fiber.App, deps CartRouterDeps) {
	api := app.Group("/api", LocaleMiddleware(deps.Translator), SessionMiddleware(deps.SecureCookie))

	cartHandler := NewCartHandler(deps.Carts, deps.Translator, deps.Logger)
	carts := api.Group("/cart")
	carts.Get("/", cartHandler.Get)
	carts.Delete("/", cartHandler.Clear)
	carts.Post("/validate", cartHandler.Validate)
	carts.Post("/items/:id", cartHandler.AddItem)
	carts.Put("/items/:id", cartHandler.UpdateItem)
	carts.Delete("/items/:id", cartHandler.RemoveItem)
}

// InventoryRouter registra las rutas del servicio de inventario (mismo contrato que consume el carrito).
func InventoryRouter(app *fiber.App, uc *usecase.CatalogUseCase) {
	h := NewCatalogHandler(uc)
	app.Get("/products", h.List)
	app.Get("/products/:id", h.GetProduct)
	app.Get("/stock/:id", h.GetStock)
}
