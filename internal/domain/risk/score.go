package risk

import (
	"time"

	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// Niveles de riesgo de un cliente según su historial crediticio.
const (
	LevelGreen  = "VERDE"    // sin historial o sin créditos malos
	LevelYellow = "AMARILLO" // 1 o 2 créditos malos
	LevelRed    = "ROJO"     // 3 o más: requiere autorización para prestar
)

// IsBad marca un crédito como "malo": sigue activo ya vencido, o terminó
// pero el último pago llegó después de la fecha fin estimada.
func IsBad(c *entity.Credit, now time.Time) bool {
	if c.State == entity.CreditActive && now.After(c.EstimatedEndDate) {
		return true
	}
	if c.State == entity.CreditFinished && c.LastPaymentAt != nil && c.LastPaymentAt.After(c.EstimatedEndDate) {
		return true
	}
	return false
}

// Score agrega el historial completo de créditos de un cliente en un nivel.
// Puro: se usa como gate antes de desembolsar y como consulta independiente.
func Score(history []*entity.Credit, now time.Time) string {
	bad := 0
	for _, c := range history {
		if IsBad(c, now) {
			bad++
		}
	}
	switch {
	case bad == 0:
		return LevelGreen
	case bad <= 2:
		return LevelYellow
	default:
		return LevelRed
	}
}
