package repository

import "github.com/tu-usuario/cobranza-api/internal/domain/entity"

// RouteRepository define el puerto de persistencia para Route.
type RouteRepository interface {
	Create(route *entity.Route) error
	GetByID(companyID, id string) (*entity.Route, error)
	ListByCompany(companyID string) ([]*entity.Route, error)
	Update(route *entity.Route) error
}
