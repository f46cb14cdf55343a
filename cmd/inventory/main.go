// inventory sirve el catálogo y el stock que consulta el carrito:
// GET /products, GET /products/:id y GET /stock/:id.
//
// Con DATABASE_URL o DB_HOST lee de PostgreSQL (e importa INVENTORY_SEED_FILE si se indica);
// sin base de datos sirve INVENTORY_SEED_FILE desde memoria.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/storefront-cart/internal/application/usecase"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/catalogfile"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/postgres"
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
		Service: "inventory",
	})

	ctx := context.Background()
	var catalogUC *usecase.CatalogUseCase

	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración")
		}

		if cfg.Inventory.SeedFile != "" {
			seed, err := catalogfile.Load(cfg.Inventory.SeedFile)
			if err != nil {
				log.Fatal().Err(err).Str("file", cfg.Inventory.SeedFile).Msg("leer semilla")
			}
			var n int
			err = postgres.NewTxRunner(pool).RunImport(ctx, func(w usecase.CatalogWriter) error {
				var err error
				n, err = usecase.ImportCatalog(ctx, seed.Products(), seed.StockLevels(), w)
				return err
			})
			if err != nil {
				log.Fatal().Err(err).Msg("importar semilla")
			}
			log.Info().Int("products", n).Str("file", cfg.Inventory.SeedFile).Msg("catálogo importado")
		}

		catalogUC = usecase.NewCatalogUseCase(postgres.NewProductRepository(pool), postgres.NewStockRepository(pool))
	} else {
		if cfg.Inventory.SeedFile == "" {
			log.Fatal().Msg("sin base de datos se requiere INVENTORY_SEED_FILE")
		}
		seed, err := catalogfile.Load(cfg.Inventory.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Inventory.SeedFile).Msg("leer semilla")
		}
		log.Info().Int("products", len(seed.Products())).Msg("catálogo en memoria")
		catalogUC = usecase.NewCatalogUseCase(seed, seed)
	}

	app := fiber.New(fiber.Config{
		AppName:      "inventory",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "inventory"})
	})
	httpRouter.InventoryRouter(app, catalogUC)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("inventario detenido")
}
