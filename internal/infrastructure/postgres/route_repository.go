package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

// RouteRepo implementación de RouteRepository.
type RouteRepo struct {
	q Querier
}

// NewRouteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

// Create persiste una ruta nueva.
func (r *RouteRepo) Create(route *entity.Route) error {
	query := `
		INSERT INTO routes (id, company_id, name, collector_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		route.ID, route.CompanyID, route.Name, route.CollectorID, route.Status, route.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

// GetByID obtiene una ruta por empresa e ID.
func (r *RouteRepo) GetByID(companyID, id string) (*entity.Route, error) {
	query := `
		SELECT id, company_id, name, collector_id, status, created_at
		FROM routes WHERE company_id = $1 AND id = $2`
	var rt entity.Route
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&rt.ID, &rt.CompanyID, &rt.Name, &rt.CollectorID, &rt.Status, &rt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get route: %w", err)
	}
	return &rt, nil
}

// ListByCompany lista las rutas de la empresa.
func (r *RouteRepo) ListByCompany(companyID string) ([]*entity.Route, error) {
	query := `
		SELECT id, company_id, name, collector_id, status, created_at
		FROM routes WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Route
	for rows.Next() {
		var rt entity.Route
		if err := rows.Scan(&rt.ID, &rt.CompanyID, &rt.Name, &rt.CollectorID, &rt.Status, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		list = append(list, &rt)
	}
	return list, rows.Err()
}

// Update actualiza nombre, cobrador asignado y estado de la ruta.
func (r *RouteRepo) Update(route *entity.Route) error {
	query := `
		UPDATE routes SET name = $3, collector_id = $4, status = $5
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		route.CompanyID, route.ID, route.Name, route.CollectorID, route.Status,
	)
	if err != nil {
		return fmt.Errorf("update route: %w", err)
	}
	return nil
}
