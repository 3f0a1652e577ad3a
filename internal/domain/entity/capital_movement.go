package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de capital.
const (
	CapitalInjection  = "INYECCION"
	CapitalWithdrawal = "RETIRO"
)

// CapitalMovement es una inyección o retiro de capital de trabajo a nivel
// empresa. Libro append-only, independiente del libro de créditos de calle:
// el capital disponible se deriva como Σ inyecciones − Σ retiros.
type CapitalMovement struct {
	ID          string
	CompanyID   string
	UserID      string
	Type        string // INYECCION, RETIRO
	Amount      decimal.Decimal
	Description string
	MovedAt     time.Time
}
