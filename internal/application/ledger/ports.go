package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el alta del crédito, el
// update de saldo y el registro del pago queden juntos o no queden.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		creditRepo repository.CreditRepository,
		paymentRepo repository.PaymentRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}

// ReceiptData datos del recibo de pago para la representación PDF.
type ReceiptData struct {
	CompanyName  string
	CustomerName string
	CustomerDNI  string
	PaymentID    string
	Amount       decimal.Decimal
	Balance      decimal.Decimal
	Method       string
	PaidAt       string
	CollectorName string
}

// ReceiptGenerator puerto para generar el recibo de pago en PDF.
type ReceiptGenerator interface {
	GenerateReceipt(data ReceiptData) ([]byte, error)
}
