package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es el camino de todo lo que toca saldos: apertura de
// créditos, pagos y reversas.
func (r *TxRunner) Run(ctx context.Context, fn func(
	creditRepo repository.CreditRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	creditRepo := NewCreditRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	customerRepo := NewCustomerRepository(tx)

	if err := fn(creditRepo, paymentRepo, customerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
