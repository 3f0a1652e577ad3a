package risk

import (
	"time"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	domcredit "github.com/tu-usuario/cobranza-api/internal/domain/credit"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/internal/domain/risk"
)

// UseCase expone el semáforo de riesgo como consulta independiente, para
// que el cobrador lo vea antes de proponer un crédito nuevo.
type UseCase struct {
	creditRepo   repository.CreditRepository
	customerRepo repository.CustomerRepository
	clock        domain.Clock
}

// NewUseCase construye la consulta de riesgo.
func NewUseCase(creditRepo repository.CreditRepository, customerRepo repository.CustomerRepository, clock domain.Clock) *UseCase {
	return &UseCase{creditRepo: creditRepo, customerRepo: customerRepo, clock: clock}
}

// LookupByCustomer evalúa el historial completo del cliente y devuelve el
// nivel junto con los créditos que lo sustentan. El nivel nunca se persiste:
// se recalcula en cada consulta con el mismo scoring que usa el desembolso.
func (uc *UseCase) LookupByCustomer(companyID, customerID string) (*dto.RiskLookupResponse, error) {
	customer, err := uc.customerRepo.GetByID(companyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	history, err := uc.creditRepo.HistoryByCustomer(companyID, customerID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	bad := 0
	credits := make([]*dto.CreditResponse, 0, len(history))
	for _, c := range history {
		if risk.IsBad(c, now) {
			bad++
		}
		credits = append(credits, toCreditResponse(c, now))
	}

	return &dto.RiskLookupResponse{
		CustomerID: customerID,
		Level:      risk.Score(history, now),
		BadCredits: bad,
		Credits:    credits,
	}, nil
}

func toCreditResponse(c *entity.Credit, now time.Time) *dto.CreditResponse {
	return &dto.CreditResponse{
		ID:                 c.ID,
		CustomerID:         c.CustomerID,
		Principal:          c.Principal,
		RatePercent:        c.RatePercent,
		Interest:           c.Interest,
		TotalDue:           c.TotalDue,
		Balance:            c.Balance,
		InstallmentAmount:  c.InstallmentAmount,
		Installments:       c.Installments,
		Frequency:          c.Frequency,
		DisbursementMethod: c.DisbursementMethod,
		StartDate:          c.StartDate,
		EstimatedEndDate:   c.EstimatedEndDate,
		LastPaymentAt:      c.LastPaymentAt,
		State:              c.State,
		DelinquencyTier:    domcredit.DelinquencyTier(c, now),
		MissedDays:         domcredit.MissedInstallments(c, now),
		ProgressPercent:    domcredit.Progress(c),
	}
}
