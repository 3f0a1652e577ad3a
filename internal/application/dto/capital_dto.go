package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalMovementRequest inyección o retiro de capital de trabajo.
type CapitalMovementRequest struct {
	Type        string          `json:"type"` // INYECCION, RETIRO
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Override    bool            `json:"override"` // autorización de admin, verificada fuera del core
}

// CapitalMovementResponse proyección de un movimiento.
type CapitalMovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UserID      string          `json:"user_id"`
	MovedAt     time.Time       `json:"moved_at"`
}

// CapitalSummaryResponse estado de capital y cartera de la empresa.
type CapitalSummaryResponse struct {
	Available       decimal.Decimal `json:"available"`        // Σ inyecciones − Σ retiros
	StreetCapital   decimal.Decimal `json:"street_capital"`   // saldos de créditos activos
	ProjectedProfit decimal.Decimal `json:"projected_profit"` // intereses por cobrar
	ActiveCredits   int64           `json:"active_credits"`
}
