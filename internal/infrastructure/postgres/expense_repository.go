package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación de ExpenseRepository (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto de ruta.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, company_id, user_id, concept, amount, spent_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.CompanyID, expense.UserID, expense.Concept,
		expense.Amount, expense.SpentAt, expense.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por empresa e ID (incluye tombstones).
func (r *ExpenseRepo) GetByID(companyID, id string) (*entity.Expense, error) {
	query := `
		SELECT id, company_id, user_id, concept, amount, spent_at, deleted_at
		FROM expenses WHERE company_id = $1 AND id = $2`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&e.ID, &e.CompanyID, &e.UserID, &e.Concept, &e.Amount, &e.SpentAt, &e.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// ListByUserAndDay lista los gastos vivos del usuario en la ventana [from, to).
func (r *ExpenseRepo) ListByUserAndDay(companyID, userID string, from, to time.Time) ([]*entity.Expense, error) {
	query := `
		SELECT id, company_id, user_id, concept, amount, spent_at, deleted_at
		FROM expenses
		WHERE company_id = $1 AND user_id = $2 AND spent_at >= $3 AND spent_at < $4
			AND deleted_at IS NULL
		ORDER BY spent_at`
	rows, err := r.q.Query(context.Background(), query, companyID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.UserID, &e.Concept, &e.Amount, &e.SpentAt, &e.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// SumByUserAndDay suma los gastos vivos del usuario en la ventana [from, to).
// Los anulados (deleted_at) no cuentan.
func (r *ExpenseRepo) SumByUserAndDay(companyID, userID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE company_id = $1 AND user_id = $2 AND spent_at >= $3 AND spent_at < $4
			AND deleted_at IS NULL`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, companyID, userID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return sum, nil
}

// SoftDelete marca el gasto como anulado sin borrar la fila.
func (r *ExpenseRepo) SoftDelete(companyID, id string, at time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET deleted_at = $3 WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, id, at,
	)
	if err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
