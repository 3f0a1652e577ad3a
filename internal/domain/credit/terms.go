package credit

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// Terms es el resultado de la calculadora de crédito. Es lo que ve el
// cobrador en el preview y exactamente lo que se persiste al desembolsar:
// misma fórmula, mismo redondeo, para que ambos coincidan bit a bit.
type Terms struct {
	Principal         decimal.Decimal
	RatePercent       decimal.Decimal
	Interest          decimal.Decimal
	TotalDue          decimal.Decimal
	InstallmentAmount decimal.Decimal
	Installments      int
	Frequency         string
	StartDate         time.Time
	EstimatedEndDate  time.Time
}

var oneHundred = decimal.NewFromInt(100)

// PeriodDays devuelve los días que abarca el crédito según frecuencia y
// número de cuotas: 1 día por cuota diaria, 7 por semanal, 30 por mensual.
func PeriodDays(frequency string, installments int) (int, error) {
	switch frequency {
	case entity.FrequencyDaily:
		return installments, nil
	case entity.FrequencyWeekly:
		return installments * 7, nil
	case entity.FrequencyMonthly:
		return installments * 30, nil
	default:
		return 0, domain.ErrInvalidTerms
	}
}

// CalculateTerms deriva interés, total a pagar, valor de cuota y fecha fin
// estimada. Puro y determinista: sin efectos, sin reloj implícito.
//
//	interes = capital * tasa/100
//	total   = capital + interes
//	cuota   = total / cuotas
//
// El redondeo a 2 decimales (mitad hacia arriba) se aplica solo al momento
// de fijar los valores finales, nunca en pasos intermedios.
func CalculateTerms(principal, ratePercent decimal.Decimal, installments int, frequency string, start time.Time) (Terms, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Terms{}, domain.ErrInvalidTerms
	}
	if installments <= 0 {
		return Terms{}, domain.ErrInvalidTerms
	}
	days, err := PeriodDays(frequency, installments)
	if err != nil {
		return Terms{}, err
	}

	interest := principal.Mul(ratePercent).Div(oneHundred)
	total := principal.Add(interest)
	installment := total.Div(decimal.NewFromInt(int64(installments)))

	return Terms{
		Principal:         principal.Round(2),
		RatePercent:       ratePercent,
		Interest:          interest.Round(2),
		TotalDue:          total.Round(2),
		InstallmentAmount: installment.Round(2),
		Installments:      installments,
		Frequency:         frequency,
		StartDate:         start,
		EstimatedEndDate:  start.AddDate(0, 0, days),
	}, nil
}
