package credit_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/cobranza-api/internal/domain/credit"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

func creditWithLastPayment(daysAgo int, now time.Time) *entity.Credit {
	paid := now.AddDate(0, 0, -daysAgo)
	return &entity.Credit{
		StartDate:     now.AddDate(0, 0, -30),
		LastPaymentAt: &paid,
		TotalDue:      decimal.NewFromInt(1200),
		Balance:       decimal.NewFromInt(600),
	}
}

func TestDelinquencyTier_Semaforo(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, credit.TierOnTime, credit.DelinquencyTier(creditWithLastPayment(0, now), now), "pagó hoy → al día")
	assert.Equal(t, credit.TierOnTime, credit.DelinquencyTier(creditWithLastPayment(1, now), now), "pagó ayer → al día")
	assert.Equal(t, credit.TierDueSoon, credit.DelinquencyTier(creditWithLastPayment(2, now), now), "2 días → por vencer")
	assert.Equal(t, credit.TierLate, credit.DelinquencyTier(creditWithLastPayment(3, now), now), "3 días → atrasado")
	assert.Equal(t, credit.TierLate, credit.DelinquencyTier(creditWithLastPayment(7, now), now), "7 días → atrasado")
	assert.Equal(t, credit.TierOverdue, credit.DelinquencyTier(creditWithLastPayment(8, now), now), "8 días → moroso")
}

// Sin pagos registrados, el semáforo corre desde la fecha de inicio.
func TestDelinquencyTier_SinPagosUsaFechaInicio(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	c := &entity.Credit{StartDate: now.AddDate(0, 0, -10)}
	assert.Equal(t, credit.TierOverdue, credit.DelinquencyTier(c, now), "10 días desde el inicio sin pagar → moroso")
}

func TestMissedInstallments_DiaDeGracia(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, credit.MissedInstallments(creditWithLastPayment(1, now), now), "un día sin pagar no es falla")
	assert.Equal(t, 2, credit.MissedInstallments(creditWithLastPayment(3, now), now), "3 días = 2 fallas")
}

func TestProgress_PorcentajePagado(t *testing.T) {
	c := &entity.Credit{TotalDue: decimal.NewFromInt(1200), Balance: decimal.NewFromInt(600)}
	assert.True(t, credit.Progress(c).Equal(decimal.NewFromInt(50)), "mitad pagada = 50%%")

	c.Balance = decimal.Zero
	assert.True(t, credit.Progress(c).Equal(decimal.NewFromInt(100)), "saldo cero = 100%%")
}
