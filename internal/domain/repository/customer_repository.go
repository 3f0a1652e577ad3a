package repository

import "github.com/tu-usuario/cobranza-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// Toda operación está acotada por companyID (aislamiento de tenant).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(companyID, id string) (*entity.Customer, error)
	// GetByIDForUpdate bloquea la fila del cliente hasta el fin de la
	// transacción. Serializa las aperturas de crédito por cliente; solo
	// tiene sentido sobre un repo atado a una tx.
	GetByIDForUpdate(companyID, id string) (*entity.Customer, error)
	GetByDNI(companyID, dni string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	// ListByRoute devuelve los clientes de la ruta en orden de posición.
	ListByRoute(companyID, routeID string) ([]*entity.Customer, error)
	Search(companyID, term string, limit int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// UpdatePositions persiste posiciones densas 1..N para los IDs dados,
	// en el orden del slice. Debe ejecutarse dentro de una transacción.
	UpdatePositions(companyID, routeID string, orderedIDs []string) error
	// CountByRoute cuenta clientes de una ruta (para el preview de migración).
	CountByRoute(companyID, routeID string) (int64, error)
	// ReassignRoute mueve todos los clientes de fromRouteID a toRouteID y
	// devuelve cuántas filas cambió. Cero filas es un no-op válido.
	ReassignRoute(companyID, fromRouteID, toRouteID string) (int64, error)
}
