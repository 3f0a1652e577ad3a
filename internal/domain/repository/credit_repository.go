package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// BalanceUpdate es el cambio atómico de saldo de un crédito. ExpectedVersion
// respalda el chequeo optimista: si la fila ya no está en esa versión, el
// update no afecta filas y el caller recibe ErrConcurrentUpdate.
type BalanceUpdate struct {
	CreditID        string
	CompanyID       string
	NewBalance      decimal.Decimal
	NewState        string
	LastPaymentAt   *time.Time
	ExpectedVersion int64
}

// PortfolioSummary agregado de cartera para la pantalla de capital.
type PortfolioSummary struct {
	StreetCapital   decimal.Decimal // Σ saldos de créditos activos
	ProjectedProfit decimal.Decimal // Σ intereses de créditos activos
	ActiveCredits   int64
}

// CreditRepository define el puerto de persistencia para Credit.
type CreditRepository interface {
	Create(credit *entity.Credit) error
	GetByID(companyID, id string) (*entity.Credit, error)
	// GetActiveByCustomer devuelve el crédito ACTIVO más reciente del
	// cliente o nil. Un override autorizado puede dejar más de un ACTIVO;
	// el orden es determinista (más nuevo primero).
	GetActiveByCustomer(companyID, customerID string) (*entity.Credit, error)
	// HistoryByCustomer devuelve todos los créditos del cliente, más
	// reciente primero. Insumo del scoring de riesgo.
	HistoryByCustomer(companyID, customerID string) ([]*entity.Credit, error)
	// ListActiveByRoute devuelve créditos activos cuyos clientes pertenecen
	// a la ruta, en orden de posición del cliente (vista de cobranza).
	ListActiveByRoute(companyID, routeID string) ([]*entity.Credit, error)
	// ApplyBalanceUpdate ejecuta el update optimista del saldo. Retorna
	// domain.ErrConcurrentUpdate si la versión esperada ya no coincide.
	ApplyBalanceUpdate(u BalanceUpdate) error
	// SumPrincipalByIssuerAndDay suma los capitales desembolsados por un
	// usuario dentro de la ventana [from, to) (salidas de caja).
	SumPrincipalByIssuerAndDay(companyID, issuerID string, from, to time.Time) (decimal.Decimal, error)
	PortfolioSummary(companyID string) (*PortfolioSummary, error)
}
