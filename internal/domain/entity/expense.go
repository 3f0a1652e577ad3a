package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto de ruta registrado por un cobrador (gasolina,
// pasajes, etc.). Borrado lógico: DeletedAt marca el tombstone y lo
// excluye del cierre de caja sin perder la pista de auditoría.
type Expense struct {
	ID        string
	CompanyID string
	UserID    string
	Concept   string
	Amount    decimal.Decimal
	SpentAt   time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si el gasto fue anulado.
func (e *Expense) IsDeleted() bool { return e.DeletedAt != nil }
