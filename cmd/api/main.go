package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/storefront-cart/internal/application/cart"
	"github.com/jhoicas/storefront-cart/internal/domain/repository"
	"github.com/jhoicas/storefront-cart/internal/i18n"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/inventoryapi"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/localstore"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/redisstore"
	httpRouter "github.com/jhoicas/storefront-cart/internal/interfaces/http"
	"github.com/jhoicas/storefront-cart/pkg/config"
	"github.com/jhoicas/storefront-cart/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Cart.StorageDriver).
		Str("inventory", cfg.Inventory.BaseURL).
		Msg("iniciando API del carrito")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Cart.StorageDriver).Msg("almacenamiento del carrito")
	}
	defer closeStorage()

	inventory := inventoryapi.NewClient(cfg.Inventory.BaseURL, cfg.Inventory.Timeout)
	carts := cart.NewRegistry(inventory, storage, log, cart.Options{
		StorageKey:           cfg.Cart.StorageKey,
		CheckStockOnFirstAdd: cfg.Cart.CheckStockOnFirstAdd,
	})
	go carts.RunSweeper(ctx, time.Minute, cfg.Cart.SessionMaxIdle)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront Cart API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": carts.Len()})
	})

	httpRouter.CartRouter(app, httpRouter.CartRouterDeps{
		Carts:        carts,
		Translator:   i18n.New(cfg.Cart.DefaultLocale),
		Logger:       log.Named("http"),
		SecureCookie: cfg.Cart.SecureCookie,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage elige el backend del snapshot según CART_STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (repository.CartStorage, func(), error) {
	noop := func() {}
	switch cfg.Cart.StorageDriver {
	case config.StorageMemory:
		return localstore.NewMemoryStorage(), noop, nil
	case config.StorageFile:
		fs, err := localstore.NewFileStorage(cfg.Cart.StorageDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, noop, nil
	case config.StorageRedis:
		client := redisstore.NewClient(cfg.Redis.Addr)
		rs := redisstore.NewCartStorage(client, cfg.Redis.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := rs.Ping(pingCtx, 5); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("conectar a Redis: %w", err)
		}
		return rs, func() { _ = client.Close() }, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewCartStorage(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("driver desconocido: %s", cfg.Cart.StorageDriver)
	}
}
