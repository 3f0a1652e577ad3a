package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconcileRequest entradas manuales del cierre diario de caja.
type ReconcileRequest struct {
	Day           string          `json:"day"`            // YYYY-MM-DD; vacío = hoy en la zona del negocio
	OpeningFloat  decimal.Decimal `json:"opening_float"`  // base inicial (caja chica)
	ExtraDeposits decimal.Decimal `json:"extra_deposits"` // depósitos adicionales entregados al cobrador
	PhysicalCount decimal.Decimal `json:"physical_count"` // efectivo contado al final del día
}

// ReconcileResponse resultado del cuadre: teórico vs. físico.
type ReconcileResponse struct {
	CollectorID    string          `json:"collector_id"`
	Day            string          `json:"day"` // YYYY-MM-DD en la zona del negocio
	OpeningFloat   decimal.Decimal `json:"opening_float"`
	ExtraDeposits  decimal.Decimal `json:"extra_deposits"`
	CollectionsIn  decimal.Decimal `json:"collections_in"`
	DisbursedOut   decimal.Decimal `json:"disbursed_out"`
	ExpensesOut    decimal.Decimal `json:"expenses_out"`
	TotalIn        decimal.Decimal `json:"total_in"`
	TotalOut       decimal.Decimal `json:"total_out"`
	Theoretical    decimal.Decimal `json:"theoretical"`
	PhysicalCount  decimal.Decimal `json:"physical_count"`
	Variance       decimal.Decimal `json:"variance"`
	Classification string          `json:"classification"` // CUADRADA, SOBRANTE, FALTANTE
}

// SettlementResponse corte individual del cobrador: lo que debe entregar
// hoy sin contar base ni depósitos (auditoría del admin).
type SettlementResponse struct {
	CollectorID  string          `json:"collector_id"`
	Day          string          `json:"day"`
	Collected    decimal.Decimal `json:"collected"`
	Disbursed    decimal.Decimal `json:"disbursed"`
	Expenses     decimal.Decimal `json:"expenses"`
	ToHandOver   decimal.Decimal `json:"to_hand_over"` // cobrado − prestado − gastos
}

// AddExpenseRequest registro de un gasto de ruta.
type AddExpenseRequest struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

// ExpenseResponse proyección de un gasto.
type ExpenseResponse struct {
	ID      string          `json:"id"`
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
	SpentAt time.Time       `json:"spent_at"`
}
