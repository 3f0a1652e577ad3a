package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/auth"
	"github.com/tu-usuario/cobranza-api/internal/application/capital"
	"github.com/tu-usuario/cobranza-api/internal/application/cashbox"
	"github.com/tu-usuario/cobranza-api/internal/application/customer"
	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
	"github.com/tu-usuario/cobranza-api/internal/application/risk"
	"github.com/tu-usuario/cobranza-api/internal/application/routing"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustomerUC *customer.UseCase
	RiskUC     *risk.UseCase
	LedgerUC   *ledger.UseCase
	CashboxUC  *cashbox.UseCase
	RoutingUC  *routing.UseCase
	CapitalUC *capital.UseCase
	// DefaultRate tasa de interés aplicada cuando la petición no trae una.
	DefaultRate decimal.Decimal
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; registro de usuarios solo ADMIN)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	users := protected.Group("/users")
	users.Post("/", adminOnly, authHandler.Register)
	users.Get("/collectors", authHandler.ListCollectors)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.RiskUC)
	creditHandler := NewCreditHandler(deps.LedgerUC, deps.DefaultRate)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/risk", customerHandler.Risk)
	customers.Get("/:id/credits", creditHandler.History)

	// Créditos y pagos
	credits := protected.Group("/credits")
	credits.Post("/preview", creditHandler.PreviewTerms)
	credits.Post("/", creditHandler.Open)
	credits.Get("/:id", creditHandler.GetByID)
	credits.Post("/:id/payments", creditHandler.ApplyPayment)

	payments := protected.Group("/payments")
	payments.Delete("/:id", adminOnly, creditHandler.ReversePayment)
	payments.Get("/:id/receipt", creditHandler.Receipt)

	// Caja y gastos
	box := protected.Group("/cashbox")
	cashboxHandler := NewCashboxHandler(deps.CashboxUC)
	box.Post("/reconcile", cashboxHandler.Reconcile)
	box.Get("/settlement", cashboxHandler.Settlement)
	box.Post("/expenses", cashboxHandler.AddExpense)
	box.Get("/expenses", cashboxHandler.ListExpenses)
	box.Delete("/expenses/:id", cashboxHandler.RemoveExpense)

	// Rutas de cobro
	routes := protected.Group("/routes")
	routeHandler := NewRouteHandler(deps.RoutingUC)
	routes.Post("/", adminOnly, routeHandler.Create)
	routes.Get("/", routeHandler.List)
	routes.Post("/reassign", adminOnly, routeHandler.Reassign)
	routes.Get("/:id/sequence", routeHandler.ProposeSequence)
	routes.Put("/:id/order", routeHandler.CommitOrder)
	routes.Patch("/:id/positions", routeHandler.MovePosition)
	routes.Get("/:id/stops", routeHandler.Stops)

	// Capital (solo ADMIN)
	cap := protected.Group("/capital", adminOnly)
	capitalHandler := NewCapitalHandler(deps.CapitalUC)
	cap.Post("/movements", capitalHandler.RegisterMovement)
	cap.Get("/movements", capitalHandler.ListMovements)
	cap.Get("/summary", capitalHandler.Summary)
}
