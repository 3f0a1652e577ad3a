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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, dni, name, phone, address, district, business_ref,
	route_id, route_position, lat, lon, created_at, updated_at`

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.CompanyID, customer.DNI, customer.Name, customer.Phone,
		customer.Address, customer.District, customer.BusinessRef,
		customer.RouteID, customer.RoutePosition, customer.Lat, customer.Lon,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por empresa e ID.
func (r *CustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetByIDForUpdate obtiene el cliente con FOR UPDATE. El lock de la fila
// serializa las aperturas de crédito del cliente dentro de la tx.
func (r *CustomerRepo) GetByIDForUpdate(companyID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetByDNI obtiene un cliente por empresa y DNI.
func (r *CustomerRepo) GetByDNI(companyID, dni string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1 AND dni = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, dni))
}

// ListByCompany lista clientes de la empresa con paginación.
func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return r.scanAll(rows)
}

// ListByRoute lista los clientes de una ruta en orden de visita.
func (r *CustomerRepo) ListByRoute(companyID, routeID string) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers WHERE company_id = $1 AND route_id = $2
		ORDER BY route_position`
	rows, err := r.q.Query(context.Background(), query, companyID, routeID)
	if err != nil {
		return nil, fmt.Errorf("list customers by route: %w", err)
	}
	return r.scanAll(rows)
}

// Search busca por nombre o DNI (el buscador rápido del cobrador).
func (r *CustomerRepo) Search(companyID, term string, limit int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE company_id = $1 AND (name ILIKE '%' || $2 || '%' OR dni LIKE $2 || '%')
		ORDER BY name LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, companyID, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	return r.scanAll(rows)
}

// Update actualiza los datos de un cliente (no toca ruta ni posición).
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, phone = $4, address = $5, district = $6, business_ref = $7,
			lat = $8, lon = $9, updated_at = $10
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		customer.CompanyID, customer.ID, customer.Name, customer.Phone, customer.Address,
		customer.District, customer.BusinessRef, customer.Lat, customer.Lon, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// UpdatePositions asigna posiciones densas 1..N según el orden de los IDs,
// en un solo statement para que el commit del orden sea atómico.
func (r *CustomerRepo) UpdatePositions(companyID, routeID string, orderedIDs []string) error {
	query := `
		UPDATE customers
		SET route_position = u.pos, updated_at = now()
		FROM (SELECT unnest($3::text[]) AS id, generate_series(1, array_length($3::text[], 1)) AS pos) u
		WHERE customers.company_id = $1 AND customers.route_id = $2 AND customers.id = u.id`
	tag, err := r.q.Exec(context.Background(), query, companyID, routeID, orderedIDs)
	if err != nil {
		return fmt.Errorf("update positions: %w", err)
	}
	if tag.RowsAffected() != int64(len(orderedIDs)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// CountByRoute cuenta los clientes de una ruta.
func (r *CustomerRepo) CountByRoute(companyID, routeID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM customers WHERE company_id = $1 AND route_id = $2`,
		companyID, routeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers by route: %w", err)
	}
	return n, nil
}

// ReassignRoute mueve todos los clientes de una ruta a otra y devuelve
// cuántos movió. Las posiciones se recalculan densas en la ruta destino a
// continuación de las existentes.
func (r *CustomerRepo) ReassignRoute(companyID, fromRouteID, toRouteID string) (int64, error) {
	query := `
		UPDATE customers
		SET route_id = $3,
			route_position = (SELECT COALESCE(MAX(route_position), 0) FROM customers WHERE company_id = $1 AND route_id = $3) + route_position,
			updated_at = now()
		WHERE company_id = $1 AND route_id = $2`
	tag, err := r.q.Exec(context.Background(), query, companyID, fromRouteID, toRouteID)
	if err != nil {
		return 0, fmt.Errorf("reassign route: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *CustomerRepo) scanOne(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.DNI, &c.Name, &c.Phone, &c.Address, &c.District,
		&c.BusinessRef, &c.RouteID, &c.RoutePosition, &c.Lat, &c.Lon, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) scanAll(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.DNI, &c.Name, &c.Phone, &c.Address, &c.District,
			&c.BusinessRef, &c.RouteID, &c.RoutePosition, &c.Lat, &c.Lon, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
