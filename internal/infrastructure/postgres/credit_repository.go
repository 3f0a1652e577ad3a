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

var _ repository.CreditRepository = (*CreditRepo)(nil)

// CreditRepo implementación de CreditRepository (usable con pool o tx).
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

const creditColumns = `id, company_id, customer_id, principal, rate_percent, interest,
	total_due, balance, installment_amount, installments, frequency, disbursement_method,
	start_date, estimated_end_date, last_payment_at, state, issuer_id, version, created_at, updated_at`

// Create persiste un crédito nuevo. La regla de "un activo por cliente"
// vive en el caso de uso, dentro de la tx con el cliente bloqueado: un
// override autorizado puede dejar un segundo ACTIVO legítimo, así que no
// hay índice que la imponga.
func (r *CreditRepo) Create(credit *entity.Credit) error {
	query := `
		INSERT INTO credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		credit.ID, credit.CompanyID, credit.CustomerID, credit.Principal, credit.RatePercent,
		credit.Interest, credit.TotalDue, credit.Balance, credit.InstallmentAmount,
		credit.Installments, credit.Frequency, credit.DisbursementMethod,
		credit.StartDate, credit.EstimatedEndDate, credit.LastPaymentAt, credit.State,
		credit.IssuerID, credit.Version, credit.CreatedAt, credit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

// GetByID obtiene un crédito por empresa e ID.
func (r *CreditRepo) GetByID(companyID, id string) (*entity.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetActiveByCustomer devuelve el crédito ACTIVO más reciente del cliente
// o nil. Tras un override puede haber más de un ACTIVO; el más nuevo es
// el que manda para la regla de duplicados.
func (r *CreditRepo) GetActiveByCustomer(companyID, customerID string) (*entity.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits WHERE company_id = $1 AND customer_id = $2 AND state = 'ACTIVO'
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, customerID))
}

// HistoryByCustomer devuelve todos los créditos del cliente, más reciente primero.
func (r *CreditRepo) HistoryByCustomer(companyID, customerID string) ([]*entity.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits WHERE company_id = $1 AND customer_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID, customerID)
	if err != nil {
		return nil, fmt.Errorf("history credits: %w", err)
	}
	return r.scanAll(rows)
}

// ListActiveByRoute devuelve los créditos activos de una ruta en el orden
// de visita de sus clientes.
func (r *CreditRepo) ListActiveByRoute(companyID, routeID string) ([]*entity.Credit, error) {
	query := `
		SELECT c.id, c.company_id, c.customer_id, c.principal, c.rate_percent, c.interest,
			c.total_due, c.balance, c.installment_amount, c.installments, c.frequency, c.disbursement_method,
			c.start_date, c.estimated_end_date, c.last_payment_at, c.state, c.issuer_id, c.version, c.created_at, c.updated_at
		FROM credits c
		JOIN customers cu ON cu.id = c.customer_id AND cu.company_id = c.company_id
		WHERE c.company_id = $1 AND cu.route_id = $2 AND c.state = 'ACTIVO'
		ORDER BY cu.route_position`
	rows, err := r.q.Query(context.Background(), query, companyID, routeID)
	if err != nil {
		return nil, fmt.Errorf("list credits by route: %w", err)
	}
	return r.scanAll(rows)
}

// ApplyBalanceUpdate ejecuta el update optimista del saldo: la fila solo
// cambia si sigue en la versión esperada. COALESCE conserva la fecha de
// último pago cuando el caller no la envía (caso reversa).
func (r *CreditRepo) ApplyBalanceUpdate(u repository.BalanceUpdate) error {
	query := `
		UPDATE credits
		SET balance = $4, state = $5, last_payment_at = COALESCE($6, last_payment_at),
			version = version + 1, updated_at = now()
		WHERE company_id = $1 AND id = $2 AND version = $3`
	tag, err := r.q.Exec(context.Background(), query,
		u.CompanyID, u.CreditID, u.ExpectedVersion, u.NewBalance, u.NewState, u.LastPaymentAt,
	)
	if err != nil {
		return fmt.Errorf("update credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// SumPrincipalByIssuerAndDay suma los capitales desembolsados por un
// usuario en la ventana [from, to). Entra al cuadre de caja como salida.
func (r *CreditRepo) SumPrincipalByIssuerAndDay(companyID, issuerID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(principal), 0)
		FROM credits
		WHERE company_id = $1 AND issuer_id = $2 AND created_at >= $3 AND created_at < $4`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, companyID, issuerID, from, to).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum disbursed: %w", err)
	}
	return sum, nil
}

// PortfolioSummary agrega la cartera activa de la empresa.
func (r *CreditRepo) PortfolioSummary(companyID string) (*repository.PortfolioSummary, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0), COALESCE(SUM(interest), 0), COUNT(*)
		FROM credits WHERE company_id = $1 AND state = 'ACTIVO'`
	var s repository.PortfolioSummary
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&s.StreetCapital, &s.ProjectedProfit, &s.ActiveCredits,
	)
	if err != nil {
		return nil, fmt.Errorf("portfolio summary: %w", err)
	}
	return &s, nil
}

func (r *CreditRepo) scanOne(row pgx.Row) (*entity.Credit, error) {
	var c entity.Credit
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.CustomerID, &c.Principal, &c.RatePercent, &c.Interest,
		&c.TotalDue, &c.Balance, &c.InstallmentAmount, &c.Installments, &c.Frequency,
		&c.DisbursementMethod, &c.StartDate, &c.EstimatedEndDate, &c.LastPaymentAt,
		&c.State, &c.IssuerID, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit: %w", err)
	}
	return &c, nil
}

func (r *CreditRepo) scanAll(rows pgx.Rows) ([]*entity.Credit, error) {
	defer rows.Close()
	var list []*entity.Credit
	for rows.Next() {
		var c entity.Credit
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.CustomerID, &c.Principal, &c.RatePercent, &c.Interest,
			&c.TotalDue, &c.Balance, &c.InstallmentAmount, &c.Installments, &c.Frequency,
			&c.DisbursementMethod, &c.StartDate, &c.EstimatedEndDate, &c.LastPaymentAt,
			&c.State, &c.IssuerID, &c.Version, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
