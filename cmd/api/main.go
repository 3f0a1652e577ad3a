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
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/auth"
	"github.com/tu-usuario/cobranza-api/internal/application/capital"
	"github.com/tu-usuario/cobranza-api/internal/application/cashbox"
	"github.com/tu-usuario/cobranza-api/internal/application/customer"
	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
	"github.com/tu-usuario/cobranza-api/internal/application/risk"
	"github.com/tu-usuario/cobranza-api/internal/application/routing"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	infrapdf "github.com/tu-usuario/cobranza-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/cobranza-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/cobranza-api/internal/interfaces/http"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	movementRepo := postgres.NewCapitalMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clock := domain.SystemClock{}
	receiptGen := infrapdf.NewMarotoReceiptGenerator()

	authUC := auth.NewUseCase(userRepo, clock, cfg.JWT, log)
	customerUC := customer.NewUseCase(customerRepo, routeRepo, clock)
	riskUC := risk.NewUseCase(creditRepo, customerRepo, clock)
	ledgerUC := ledger.NewUseCase(txRunner, creditRepo, paymentRepo, customerRepo, companyRepo, userRepo, receiptGen, clock, log)
	cashboxUC := cashbox.NewUseCase(paymentRepo, creditRepo, expenseRepo, clock, cfg.Credito, log)
	routingUC := routing.NewUseCase(customerRepo, creditRepo, routeRepo, clock, cfg.Credito, log)
	capitalUC := capital.NewUseCase(movementRepo, creditRepo, clock, log)

	defaultRate, err := decimal.NewFromString(cfg.Credito.TasaInteresDefault)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Credito.TasaInteresDefault).Msg("CREDITO_TASA_DEFAULT inválida")
	}

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
		Title:    "Cobranza API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		RiskUC:      riskUC,
		LedgerUC:    ledgerUC,
		CashboxUC:   cashboxUC,
		RoutingUC:   routingUC,
		CapitalUC:   capitalUC,
		DefaultRate: defaultRate,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
