package capital

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// UseCase lleva el libro de capital de trabajo de la empresa, separado del
// libro de créditos de calle. El capital disponible se deriva siempre de
// los movimientos, nunca se guarda como saldo editable.
type UseCase struct {
	movementRepo repository.CapitalMovementRepository
	creditRepo   repository.CreditRepository
	clock        domain.Clock
	log          *logger.Logger
}

// NewUseCase construye el libro de capital.
func NewUseCase(movementRepo repository.CapitalMovementRepository, creditRepo repository.CreditRepository, clock domain.Clock, log *logger.Logger) *UseCase {
	return &UseCase{
		movementRepo: movementRepo,
		creditRepo:   creditRepo,
		clock:        clock,
		log:          log.WithComponent("capital"),
	}
}

// RegisterMovement registra una inyección o un retiro. El retiro exige
// autorización explícita y no puede dejar el capital disponible en
// negativo. Todo movimiento queda en el log con el usuario que lo hizo.
func (uc *UseCase) RegisterMovement(companyID, userID string, in dto.CapitalMovementRequest) (*dto.CapitalMovementResponse, error) {
	if in.Type != entity.CapitalInjection && in.Type != entity.CapitalWithdrawal {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if in.Type == entity.CapitalWithdrawal {
		if !in.Override {
			return nil, domain.ErrOverrideRequired
		}
		available, err := uc.movementRepo.Balance(companyID)
		if err != nil {
			return nil, err
		}
		if in.Amount.GreaterThan(available) {
			return nil, domain.ErrInvalidAmount
		}
	}

	m := &entity.CapitalMovement{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		UserID:      userID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		MovedAt:     uc.clock.Now(),
	}
	if err := uc.movementRepo.Create(m); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", m.ID).
		Str("tipo", m.Type).
		Str("monto", m.Amount.String()).
		Str("user_id", userID).
		Msg("movimiento de capital registrado")

	return toMovementResponse(m), nil
}

// ListMovements devuelve el historial de movimientos de la empresa.
func (uc *UseCase) ListMovements(companyID string, page dto.PageRequest) ([]*dto.CapitalMovementResponse, error) {
	page.DefaultPage()
	movements, err := uc.movementRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CapitalMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Summary arma la foto de capital: disponible (movimientos), capital en
// calle y ganancia proyectada (cartera activa).
func (uc *UseCase) Summary(companyID string) (*dto.CapitalSummaryResponse, error) {
	available, err := uc.movementRepo.Balance(companyID)
	if err != nil {
		return nil, err
	}
	portfolio, err := uc.creditRepo.PortfolioSummary(companyID)
	if err != nil {
		return nil, err
	}
	return &dto.CapitalSummaryResponse{
		Available:       available,
		StreetCapital:   portfolio.StreetCapital,
		ProjectedProfit: portfolio.ProjectedProfit,
		ActiveCredits:   portfolio.ActiveCredits,
	}, nil
}

func toMovementResponse(m *entity.CapitalMovement) *dto.CapitalMovementResponse {
	return &dto.CapitalMovementResponse{
		ID:          m.ID,
		Type:        m.Type,
		Amount:      m.Amount,
		Description: m.Description,
		UserID:      m.UserID,
		MovedAt:     m.MovedAt,
	}
}
