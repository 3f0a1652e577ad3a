package dto

import "github.com/shopspring/decimal"

// CreateRouteRequest alta de una ruta de cobro.
type CreateRouteRequest struct {
	Name        string `json:"name"`
	CollectorID string `json:"collector_id"`
}

// RouteResponse proyección de una ruta.
type RouteResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CollectorID string `json:"collector_id,omitempty"`
	Status      bool   `json:"status"`
}

// SequenceProposalResponse orden propuesto por el enrutador automático.
// No está persistido: el caller debe confirmar con Commit.
type SequenceProposalResponse struct {
	RouteID   string              `json:"route_id"`
	Customers []*CustomerResponse `json:"customers"`
}

// CommitOrderRequest confirma un orden de visita para la ruta.
type CommitOrderRequest struct {
	OrderedCustomerIDs []string `json:"ordered_customer_ids"`
}

// MovePositionRequest reubicación manual de un cliente.
type MovePositionRequest struct {
	CustomerID  string `json:"customer_id"`
	NewPosition int    `json:"new_position"` // base 1
}

// ReassignRouteRequest migración masiva de clientes entre rutas.
type ReassignRouteRequest struct {
	FromRouteID string `json:"from_route_id"`
	ToRouteID   string `json:"to_route_id"`
	Override    bool   `json:"override"` // autorización de admin, verificada fuera del core
}

// ReassignRouteResponse resultado de la migración.
type ReassignRouteResponse struct {
	Moved int64 `json:"moved"`
}

// CollectionStopResponse una parada de la ruta de cobro del día.
type CollectionStopResponse struct {
	Position          int             `json:"position"`
	CustomerID        string          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	District          string          `json:"district"`
	CreditID          string          `json:"credit_id"`
	Balance           decimal.Decimal `json:"balance"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	DelinquencyTier   string          `json:"delinquency_tier"`
	DistanceM         *float64        `json:"distance_m,omitempty"`   // desde la posición del cobrador, si la envió
	FarFromAgent      bool            `json:"far_from_agent"`         // true si supera el radio configurado
}
