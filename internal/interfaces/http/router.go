package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/cardapio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC   *usecase.CategoryUseCase
	ProductUC    *usecase.ProductUseCase
	ComplementUC *usecase.ComplementUseCase
	StoreUC      *usecase.StoreUseCase
	Mover        OrderMover
	Menu         PublicMenu
	Checkout     Checkout
	JWTSecret    string
	Log          zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Menú público (sin token)
	public := app.Group("/public/stores/:slug")
	menuHandler := NewMenuHandler(deps.Menu, deps.Checkout)
	public.Get("/menu", menuHandler.Menu)
	public.Post("/checkout", menuHandler.Checkout)

	// Rutas del panel del comerciante (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	reorderHandler := NewReorderHandler(deps.Mover, deps.Log)

	// Store
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Get("/store", storeHandler.Get)
	api.Put("/store", storeHandler.Upsert)

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Post("/:id/move", reorderHandler.MoveCategory)
	categories.Get("/:id/products", productHandler.ListByCategory)

	// Products
	products := api.Group("/products")
	complementHandler := NewComplementHandler(deps.ComplementUC)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/move", reorderHandler.MoveProduct)

	products.Post("/:productId/complement-groups", complementHandler.AttachGroup)
	products.Get("/:productId/complement-groups", complementHandler.ListProductGroups)
	products.Delete("/:productId/complement-groups/:linkId", complementHandler.DetachGroup)
	products.Post("/:productId/complement-groups/:linkId/move", reorderHandler.MoveProductGroup)

	products.Post("/:productId/specific-complements", complementHandler.AddSpecific)
	products.Get("/:productId/specific-complements", complementHandler.ListSpecific)
	products.Delete("/:productId/specific-complements/:linkId", complementHandler.RemoveSpecific)
	products.Post("/:productId/specific-complements/:linkId/move", reorderHandler.MoveSpecificComplement)

	// Complement groups
	groups := api.Group("/complement-groups")
	groups.Post("/", complementHandler.CreateGroup)
	groups.Get("/", complementHandler.ListGroups)
	groups.Get("/:groupId", complementHandler.GetGroup)
	groups.Put("/:groupId", complementHandler.UpdateGroup)
	groups.Delete("/:groupId", complementHandler.DeleteGroup)
	groups.Post("/:groupId/items", complementHandler.CreateItem)
	groups.Put("/:groupId/items/:id", complementHandler.UpdateItem)
	groups.Delete("/:groupId/items/:id", complementHandler.DeleteItem)
	groups.Post("/:groupId/items/:id/move", reorderHandler.MoveComplementItem)
}
