package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/cardapio-api/internal/application/menu"
	"github.com/jhoicas/cardapio-api/internal/application/reorder"
	"github.com/jhoicas/cardapio-api/internal/application/usecase"
	"github.com/jhoicas/cardapio-api/internal/domain/repository"
	"github.com/jhoicas/cardapio-api/internal/infrastructure/cache"
	"github.com/jhoicas/cardapio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cardapio-api/internal/interfaces/http"
	"github.com/jhoicas/cardapio-api/pkg/config"
	"github.com/jhoicas/cardapio-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	var menuCache repository.MenuCache = cache.NopMenuCache{}
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		menuCache = cache.NewRedisMenuCache(client, cfg.Menu.CacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Menu.CacheTTL).Msg("caché del menú en Redis")
	}

	storeRepo := postgres.NewStoreRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	groupRepo := postgres.NewComplementGroupRepository(pool)
	linkRepo := postgres.NewProductComplementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, menuCache, log.Component("categories"))
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, menuCache, log.Component("products"))
	complementUC := usecase.NewComplementUseCase(groupRepo, linkRepo, productRepo, menuCache, log.Component("complements"))
	storeUC := usecase.NewStoreUseCase(storeRepo, menuCache, log.Component("store"))

	reorderSvc := reorder.NewService(postgres.NewOrderStore(pool), log.Component("reorder"))
	mover := reorder.NewMover(reorderSvc, categoryRepo, productRepo, groupRepo, linkRepo, menuCache, log.Component("reorder"))

	menuUC := menu.NewMenuUseCase(menu.Repos{
		Stores:     storeRepo,
		Categories: categoryRepo,
		Products:   productRepo,
		Groups:     groupRepo,
		Links:      linkRepo,
	}, menuCache, log.Component("menu"))
	checkoutUC := menu.NewCheckoutUseCase(menuUC, cfg.Menu.CountryCode, log.Component("checkout"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Cardápio API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:   categoryUC,
		ProductUC:    productUC,
		ComplementUC: complementUC,
		StoreUC:      storeUC,
		Mover:        mover,
		Menu:         menuUC,
		Checkout:     checkoutUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
