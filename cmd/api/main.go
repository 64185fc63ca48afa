package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Doacoes-api/internal/application/basket"
	"github.com/jhoicas/Doacoes-api/internal/application/exit"
	"github.com/jhoicas/Doacoes-api/internal/application/launch"
	"github.com/jhoicas/Doacoes-api/internal/application/stock"
	"github.com/jhoicas/Doacoes-api/internal/application/usecase"
	"github.com/jhoicas/Doacoes-api/internal/domain/inventory"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Doacoes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Doacoes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Doacoes-api/internal/interfaces/http"
	"github.com/jhoicas/Doacoes-api/pkg/config"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
	"github.com/jhoicas/Doacoes-api/pkg/metrics"
	"github.com/jhoicas/Doacoes-api/pkg/migrate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// store agrupa lo que el resto de la aplicación necesita del almacén de registros.
type store struct {
	tx     stock.TxRunner
	repos  stock.Repos
	health httpRouter.Pinger
	close  func()
}

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
		Str("store", cfg.Store.Driver).
		Strs("incoming_kinds", cfg.Stock.IncomingKinds).
		Bool("allow_negative", cfg.Stock.AllowNegative).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de registros")
	}
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	stockMetrics := metrics.NewStockMetrics(reg)

	classifier := inventory.NewKindClassifier(cfg.Stock.IncomingKinds)
	ledger := stock.NewLedger(stock.LedgerConfig{AllowNegative: cfg.Stock.AllowNegative}, stockMetrics, log.Named("ledger"))
	reconciler := stock.NewReconciler(st.repos.Products, st.repos.Movements)

	productUC := usecase.NewProductUseCase(st.repos.Products, reconciler)
	launchUC := launch.NewUseCase(st.tx, st.repos.Launches, ledger, classifier, stockMetrics, log.Named("launch"))
	basketUC := basket.NewUseCase(st.tx, st.repos.Baskets, ledger, stockMetrics, log.Named("basket"))
	exitUC := exit.NewUseCase(st.repos.Exits, st.repos.Products, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Doações API",
		}))
	}

	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		LaunchUC:   launchUC,
		BasketUC:   basketUC,
		ExitUC:     exitUC,
		Health:     st.health,
		Service:    cfg.App.Name,
		JWTSecret:  cfg.JWT.Secret,
		AdminRoles: cfg.JWT.AdminRoles,
		Logger:     log,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}

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

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &store{tx: m, repos: m.Repos(), health: m, close: func() {}}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := migrate.RunWithPool(ctx, pool, "up"); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &store{
		tx:     postgres.NewTxRunner(pool),
		repos:  postgres.Repos(pool),
		health: pool,
		close:  pool.Close,
	}, nil
}
