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

	_ "github.com/costealo/ofertas-api/docs"
	"github.com/costealo/ofertas-api/internal/application/auth"
	"github.com/costealo/ofertas-api/internal/application/oferta"
	"github.com/costealo/ofertas-api/internal/application/usecase"
	infrapdf "github.com/costealo/ofertas-api/internal/infrastructure/pdf"
	"github.com/costealo/ofertas-api/internal/infrastructure/postgres"
	"github.com/costealo/ofertas-api/internal/infrastructure/xmlfeed"
	httpRouter "github.com/costealo/ofertas-api/internal/interfaces/http"
	"github.com/costealo/ofertas-api/pkg/config"
	"github.com/costealo/ofertas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	costeoRepo := postgres.NewCosteoRepository(pool)
	ofertaRepo := postgres.NewOfertaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, planRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	costeoUC := usecase.NewCosteoUseCase(costeoRepo)
	planUC := usecase.NewPlanUseCase(planRepo)

	// Motor de ofertas: wizard en memoria + activación transaccional.
	sessions := oferta.NewSessionStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	activateUC := oferta.NewActivateUseCase(txRunner, planRepo)
	queryUC := oferta.NewQueryUseCase(ofertaRepo, costeoRepo, xmlfeed.NewExporter())

	// PDF: "Resumen de Oferta" para compartir con proveedor o equipo de pauta.
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := oferta.NewPDFUseCase(ofertaRepo, costeoRepo, userRepo, pdfGenerator)

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
		Title:    "Costealo Ofertas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CosteoUC:   costeoUC,
		PlanUC:     planUC,
		OfertaUC:   queryUC,
		PDFUC:      pdfUC,
		ActivateUC: activateUC,
		Sessions:   sessions,
		CosteoRepo: costeoRepo,
		JWTSecret:  cfg.JWT.Secret,
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
