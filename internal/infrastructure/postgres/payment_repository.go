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

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, credit_id, amount, method, collector_id, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CompanyID, payment.CreditID, payment.Amount,
		payment.Method, payment.CollectorID, payment.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por empresa e ID.
func (r *PaymentRepo) GetByID(companyID, id string) (*entity.Payment, error) {
	query := `
		SELECT id, company_id, credit_id, amount, method, collector_id, paid_at
		FROM payments WHERE company_id = $1 AND id = $2`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.CreditID, &p.Amount, &p.Method, &p.CollectorID, &p.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// ListByCredit lista los pagos de un crédito, más reciente primero.
func (r *PaymentRepo) ListByCredit(companyID, creditID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, company_id, credit_id, amount, method, collector_id, paid_at
		FROM payments WHERE company_id = $1 AND credit_id = $2
		ORDER BY paid_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID, creditID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.CreditID, &p.Amount, &p.Method, &p.CollectorID, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un pago (solo lo usa la reversa, dentro de la tx que
// restaura el saldo).
func (r *PaymentRepo) Delete(companyID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM payments WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumByCollectorAndDay suma lo cobrado por un cobrador en la ventana [from, to).
func (r *PaymentRepo) SumByCollectorAndDay(companyID, collectorID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE company_id = $1 AND collector_id = $2 AND paid_at >= $3 AND paid_at < $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, companyID, collectorID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum collections: %w", err)
	}
	return sum, nil
}
