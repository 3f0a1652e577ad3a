package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// CapitalMovementRepository define el puerto para el libro de capital.
// Append-only: sin Update ni Delete.
type CapitalMovementRepository interface {
	Create(m *entity.CapitalMovement) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.CapitalMovement, error)
	// Balance deriva el capital disponible: Σ inyecciones − Σ retiros.
	Balance(companyID string) (decimal.Decimal, error)
}
