package credit

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// Tramos del semáforo de mora. Se recalculan en cada lectura, nunca se
// guardan: el color de hoy no es el de mañana.
const (
	TierOnTime  = "AL_DIA"   // pagó hoy o ayer
	TierDueSoon = "POR_VENCER" // 2 días sin pagar
	TierLate    = "ATRASADO" // 3 a 7 días
	TierOverdue = "MOROSO"   // más de 7 días
)

// DelinquencyTier clasifica un crédito según los días transcurridos desde
// el último pago (o desde el inicio si nunca ha pagado).
func DelinquencyTier(c *entity.Credit, now time.Time) string {
	days := daysSinceLastPayment(c, now)
	switch {
	case days <= 1:
		return TierOnTime
	case days == 2:
		return TierDueSoon
	case days <= 7:
		return TierLate
	default:
		return TierOverdue
	}
}

// MissedInstallments cuenta los días de falla acumulados: con un día de
// gracia, cada día adicional sin pago cuenta como una falla.
func MissedInstallments(c *entity.Credit, now time.Time) int {
	days := daysSinceLastPayment(c, now)
	if days > 1 {
		return days - 1
	}
	return 0
}

// Progress devuelve el porcentaje pagado del crédito, redondeado a entero.
func Progress(c *entity.Credit) decimal.Decimal {
	if c.TotalDue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	paid := c.TotalDue.Sub(c.Balance)
	return paid.Div(c.TotalDue).Mul(decimal.NewFromInt(100)).Round(0)
}

func daysSinceLastPayment(c *entity.Credit, now time.Time) int {
	ref := c.StartDate
	if c.LastPaymentAt != nil {
		ref = *c.LastPaymentAt
	}
	return int(now.Sub(ref).Hours() / 24)
}
