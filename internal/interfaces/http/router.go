package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Doacoes-api/internal/application/basket"
	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/internal/application/launch"
	"github.com/jhoicas/Doacoes-api/internal/application/usecase"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	LaunchUC   *launch.UseCase
	BasketUC   *basket.UseCase
	ExitUC     *exit.UseCase
	Health     Pinger
	Service    string
	JWTSecret  string
	AdminRoles []string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Get("/health", HealthHandler(deps.Service, deps.Health))

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token si JWT_SECRET está definido)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(deps.JWTSecret != "", deps.AdminRoles...)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log.Named("products"))
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)
	products.Get("/:id/reconciliation", productHandler.Reconciliation)

	launches := protected.Group("/launches")
	launchHandler := NewLaunchHandler(deps.LaunchUC, log.Named("launches"))
	launches.Post("/", launchHandler.Create)
	launches.Get("/", launchHandler.List)
	launches.Get("/:id", launchHandler.GetByID)
	launches.Put("/:id", launchHandler.Update)
	launches.Delete("/:id", adminOnly, launchHandler.Delete)

	baskets := protected.Group("/baskets")
	basketHandler := NewBasketHandler(deps.BasketUC, log.Named("baskets"))
	baskets.Post("/", basketHandler.Create)
	baskets.Get("/", basketHandler.List)
	baskets.Get("/:id", basketHandler.GetByID)
	baskets.Put("/:id", basketHandler.Update)
	baskets.Delete("/:id", adminOnly, basketHandler.Delete)
	baskets.Post("/:id/donate", basketHandler.Donate)

	exits := protected.Group("/exits")
	exitHandler := NewExitHandler(deps.ExitUC, log.Named("exits"))
	exits.Get("/", exitHandler.List)
	exits.Get("/:id", exitHandler.GetByID)
	exits.Get("/:id/receipt", exitHandler.Receipt)
}
