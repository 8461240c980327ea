package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/production-portal/docs"
	appmrp "github.com/jhoicas/production-portal/internal/application/mrp"
	infrapdf "github.com/jhoicas/production-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/production-portal/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/production-portal/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/production-portal/internal/interfaces/http"
	"github.com/jhoicas/production-portal/pkg/config"
	"github.com/jhoicas/production-portal/pkg/logger"
)

// @title                       Production Portal API
// @version                     1.0
// @description                 Planeación de materiales (MRP) del portal de producción.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Réplica de reportes del ERP (solo lectura)
	erpPool, err := postgres.NewPool(ctx, cfg.ERP)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la réplica del ERP")
	}
	defer erpPool.Close()

	// BD local del portal (capacidad de líneas)
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	erpRepo := postgres.NewERPRepository(erpPool, postgres.ERPQueryOptions{
		FGPartPrefix: cfg.MRP.FGPartPrefix,
		Warehouses:   cfg.MRP.Warehouses,
	})
	capacityRepo := postgres.NewCapacityRepository(pool)

	mrpUC := appmrp.NewRunUseCase(
		erpRepo, capacityRepo,
		infraxlsx.NewExporter(),
		infrapdf.NewMarotoMRPReportGenerator(cfg.App.Name),
		log,
		appmrp.Config{
			AllocateFinishedGoods: cfg.MRP.AllocateFinishedGoods,
			FetchTimeout:          cfg.MRP.FetchTimeout,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.MRP.FetchTimeout + 30*time.Second, // cubre la consulta al ERP más la exportación
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Production Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MRP:       mrpUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
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
