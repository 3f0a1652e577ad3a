package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
// El almacén es append-only: no hay Update; la reversa elimina la fila
// (y el caso de uso restaura el saldo del crédito en la misma tx).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(companyID, id string) (*entity.Payment, error)
	ListByCredit(companyID, creditID string) ([]*entity.Payment, error)
	Delete(companyID, id string) error
	// SumByCollectorAndDay suma los cobros de un cobrador en la ventana
	// [from, to) (entradas de caja).
	SumByCollectorAndDay(companyID, collectorID string, from, to time.Time) (decimal.Decimal, error)
}
