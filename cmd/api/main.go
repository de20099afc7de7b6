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
	"github.com/tradelink-ng/edibridge-api/internal/application/auth"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/infrastructure/postgres"
	httpRouter "github.com/tradelink-ng/edibridge-api/internal/interfaces/http"
	"github.com/tradelink-ng/edibridge-api/pkg/config"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
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
	companyRepo := postgres.NewCompanyRepository(pool)
	cuRepo := postgres.NewCompanyUserRepository(pool)
	planRepo := postgres.NewSubscriptionPlanRepository(pool)
	usageRepo := postgres.NewAPIUsageRepository(pool)
	partnerRepo := postgres.NewTradingPartnerRepository(pool)
	ediTxRepo := postgres.NewEDITransactionRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, cuRepo, planRepo, txRunner,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.TrialConfig{DurationDays: cfg.Billing.TrialDurationDays},
	)
	tenantSvc := usecase.NewTenantService(cuRepo)
	rateLimitSvc := usecase.NewRateLimitService(usageRepo)
	limitSvc := usecase.NewLimitService(ediTxRepo, cuRepo, partnerRepo)
	subscriptionUC := usecase.NewSubscriptionService(planRepo, companyRepo, cuRepo, ediTxRepo)
	memberUC := usecase.NewMemberService(userRepo, cuRepo, txRunner)
	partnerUC := usecase.NewPartnerService(partnerRepo, limitSvc)
	documentUC := usecase.NewDocumentService(ediTxRepo, poRepo, invoiceRepo, paymentRepo, partnerRepo, txRunner)

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
		Title:    "EDIBridge API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TenantSvc:      tenantSvc,
		RateLimitSvc:   rateLimitSvc,
		LimitSvc:       limitSvc,
		SubscriptionUC: subscriptionUC,
		MemberUC:       memberUC,
		PartnerUC:      partnerUC,
		DocumentUC:     documentUC,
		UsageRepo:      usageRepo,
		Logger:         log,
		JWTSecret:      cfg.JWT.Secret,
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
