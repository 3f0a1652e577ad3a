package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment es un abono contra un crédito. Append-only: nunca se edita.
// La única corrección permitida es la reversa explícita, que elimina el
// pago y restaura el saldo del crédito.
type Payment struct {
	ID          string
	CompanyID   string
	CreditID    string
	Amount      decimal.Decimal
	Method      string // EFECTIVO, YAPE, TRANSFERENCIA
	CollectorID string // usuario_cobrador
	PaidAt      time.Time
}
