package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un crédito.
const (
	CreditActive   = "ACTIVO"
	CreditFinished = "FINALIZADO"
)

// Frecuencias de pago.
const (
	FrequencyDaily   = "DIARIO"
	FrequencyWeekly  = "SEMANAL"
	FrequencyMonthly = "MENSUAL"
)

// Métodos de desembolso/pago.
const (
	MethodCash     = "EFECTIVO"
	MethodWallet   = "YAPE"
	MethodTransfer = "TRANSFERENCIA"
)

// Credit representa un préstamo entregado a un cliente, seguido hasta
// saldo cero. Invariante: Balance = TotalDue − Σ pagos aplicados, con
// clamp a 0 (el sobrepago se acepta y lleva el saldo a 0, no a negativo).
// Version respalda el update optimista del saldo: dos cobros simultáneos
// sobre el mismo crédito se serializan o uno recibe ErrConcurrentUpdate.
type Credit struct {
	ID                 string
	CompanyID          string
	CustomerID         string
	Principal          decimal.Decimal // monto_capital
	RatePercent        decimal.Decimal // tasa_interes fija, ej. 20
	Interest           decimal.Decimal // monto_interes = Principal * Rate/100
	TotalDue           decimal.Decimal // total_a_pagar
	Balance            decimal.Decimal // saldo_restante
	InstallmentAmount  decimal.Decimal // valor_cuota
	Installments       int             // modalidad: número de cuotas
	Frequency          string          // DIARIO, SEMANAL, MENSUAL
	DisbursementMethod string
	StartDate          time.Time
	EstimatedEndDate   time.Time
	LastPaymentAt      *time.Time
	State              string // ACTIVO, FINALIZADO
	IssuerID           string // usuario que desembolsó
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsActive indica si el crédito sigue abierto.
func (c *Credit) IsActive() bool { return c.State == CreditActive }

// IsOverdue indica si el crédito está vencido estando aún abierto.
func (c *Credit) IsOverdue(now time.Time) bool {
	return c.State == CreditActive && now.After(c.EstimatedEndDate)
}
