package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreviewTermsRequest entrada de la calculadora (sin persistir nada).
type PreviewTermsRequest struct {
	Principal    decimal.Decimal `json:"principal"`
	RatePercent  decimal.Decimal `json:"rate_percent"`
	Installments int             `json:"installments"`
	Frequency    string          `json:"frequency"` // DIARIO, SEMANAL, MENSUAL
}

// TermsResponse resumen del crédito para el preview y la respuesta de apertura.
type TermsResponse struct {
	Principal         decimal.Decimal `json:"principal"`
	RatePercent       decimal.Decimal `json:"rate_percent"`
	Interest          decimal.Decimal `json:"interest"`
	TotalDue          decimal.Decimal `json:"total_due"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	Installments      int             `json:"installments"`
	Frequency         string          `json:"frequency"`
	EstimatedEndDate  time.Time       `json:"estimated_end_date"`
}

// OpenCreditRequest desembolso de un crédito nuevo.
type OpenCreditRequest struct {
	CustomerID         string          `json:"customer_id"`
	Principal          decimal.Decimal `json:"principal"`
	RatePercent        decimal.Decimal `json:"rate_percent"`
	Installments       int             `json:"installments"`
	Frequency          string          `json:"frequency"`
	DisbursementMethod string          `json:"disbursement_method"`
	// Override autorización de administrador, verificada fuera del core.
	// Obligatoria si el cliente está en ROJO o tiene un activo vencido.
	Override bool `json:"override"`
}

// CreditResponse proyección de un crédito.
type CreditResponse struct {
	ID                 string          `json:"id"`
	CustomerID         string          `json:"customer_id"`
	Principal          decimal.Decimal `json:"principal"`
	RatePercent        decimal.Decimal `json:"rate_percent"`
	Interest           decimal.Decimal `json:"interest"`
	TotalDue           decimal.Decimal `json:"total_due"`
	Balance            decimal.Decimal `json:"balance"`
	InstallmentAmount  decimal.Decimal `json:"installment_amount"`
	Installments       int             `json:"installments"`
	Frequency          string          `json:"frequency"`
	DisbursementMethod string          `json:"disbursement_method"`
	StartDate          time.Time       `json:"start_date"`
	EstimatedEndDate   time.Time       `json:"estimated_end_date"`
	LastPaymentAt      *time.Time      `json:"last_payment_at,omitempty"`
	State              string          `json:"state"`
	DelinquencyTier    string          `json:"delinquency_tier,omitempty"`
	MissedDays         int             `json:"missed_days"`
	ProgressPercent    decimal.Decimal `json:"progress_percent"`
}

// ApplyPaymentRequest cobro contra un crédito.
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // por defecto EFECTIVO (cobro en ruta)
}

// PaymentResponse proyección de un pago.
type PaymentResponse struct {
	ID          string          `json:"id"`
	CreditID    string          `json:"credit_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	CollectorID string          `json:"collector_id"`
	PaidAt      time.Time       `json:"paid_at"`
}

// CreditHistoryResponse historial crediticio de un cliente.
type CreditHistoryResponse struct {
	CustomerID string                       `json:"customer_id"`
	Credits    []*CreditResponse            `json:"credits"`
	Payments   map[string][]*PaymentResponse `json:"payments"` // credit_id → pagos
}
