package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.CapitalMovementRepository = (*CapitalMovementRepo)(nil)

// CapitalMovementRepo implementación de CapitalMovementRepository.
type CapitalMovementRepo struct {
	q Querier
}

// NewCapitalMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCapitalMovementRepository(q Querier) *CapitalMovementRepo {
	return &CapitalMovementRepo{q: q}
}

// Create persiste un movimiento de capital. Libro append-only: no hay
// update ni delete.
func (r *CapitalMovementRepo) Create(m *entity.CapitalMovement) error {
	query := `
		INSERT INTO capital_movements (id, company_id, user_id, type, amount, description, moved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.UserID, m.Type, m.Amount, m.Description, m.MovedAt,
	)
	if err != nil {
		return fmt.Errorf("insert capital movement: %w", err)
	}
	return nil
}

// ListByCompany lista los movimientos de la empresa, más reciente primero.
func (r *CapitalMovementRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CapitalMovement, error) {
	query := `
		SELECT id, company_id, user_id, type, amount, description, moved_at
		FROM capital_movements WHERE company_id = $1
		ORDER BY moved_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list capital movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.CapitalMovement
	for rows.Next() {
		var m entity.CapitalMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.UserID, &m.Type, &m.Amount, &m.Description, &m.MovedAt); err != nil {
			return nil, fmt.Errorf("scan capital movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Balance deriva el capital disponible: Σ inyecciones − Σ retiros.
func (r *CapitalMovementRepo) Balance(companyID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'INYECCION' THEN amount ELSE -amount END), 0)
		FROM capital_movements WHERE company_id = $1`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("capital balance: %w", err)
	}
	return sum, nil
}
