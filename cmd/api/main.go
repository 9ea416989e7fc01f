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

	"github.com/granitflow/granitflow-api/internal/application/analytics"
	"github.com/granitflow/granitflow-api/internal/application/auth"
	"github.com/granitflow/granitflow-api/internal/application/usecase"
	"github.com/granitflow/granitflow-api/internal/application/workflow"
	infrapdf "github.com/granitflow/granitflow-api/internal/infrastructure/pdf"
	"github.com/granitflow/granitflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/granitflow/granitflow-api/internal/interfaces/http"
	"github.com/granitflow/granitflow-api/pkg/config"
	"github.com/granitflow/granitflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	eventRepo := postgres.NewScheduleEventRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	materialUC := usecase.NewMaterialUseCase(txRunner, materialRepo, movementRepo)
	projectUC := usecase.NewProjectUseCase(txRunner, projectRepo, customerRepo, materialRepo, orderRepo)
	scheduleUC := usecase.NewScheduleUseCase(eventRepo, customerRepo)
	quoteUC := workflow.NewQuoteUseCase(txRunner, quoteRepo, customerRepo, projectRepo)
	orderUC := workflow.NewOrderUseCase(txRunner, orderRepo, projectRepo, materialRepo, customerRepo)
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo)

	pdfGenerator := infrapdf.NewMarotoQuoteGenerator(cfg.App.CompanyName)
	quotePDFUC := workflow.NewQuotePDFUseCase(quoteRepo, customerRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GranitFlow API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		MaterialUC:  materialUC,
		ProjectUC:   projectUC,
		ScheduleUC:  scheduleUC,
		QuoteUC:     quoteUC,
		QuotePDFUC:  quotePDFUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
