package repository

import "github.com/tu-usuario/cobranza-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(companyID, id string) (*entity.User, error)
	// FindByUsername busca sin filtrar por empresa: es el punto de entrada
	// del login, donde la empresa aún no se conoce.
	FindByUsername(username string) (*entity.User, error)
	ListCollectors(companyID string) ([]*entity.User, error)
}

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	GetByID(id string) (*entity.Company, error)
}
