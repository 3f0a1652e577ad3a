package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
// SoftDelete marca el tombstone; la fila nunca se elimina físicamente.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(companyID, id string) (*entity.Expense, error)
	// ListByUserAndDay lista los gastos no anulados del usuario en [from, to).
	ListByUserAndDay(companyID, userID string, from, to time.Time) ([]*entity.Expense, error)
	SumByUserAndDay(companyID, userID string, from, to time.Time) (decimal.Decimal, error)
	SoftDelete(companyID, id string, at time.Time) error
}
