package capital_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cobranza-api/internal/application/capital"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

const (
	testCompany = "empresa-1"
	testAdmin   = "admin-1"
)

type fakeMovementRepo struct {
	movements []*entity.CapitalMovement
}

func (r *fakeMovementRepo) Create(m *entity.CapitalMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.CapitalMovement, error) {
	var out []*entity.CapitalMovement
	for _, m := range r.movements {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) Balance(companyID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.movements {
		if m.CompanyID != companyID {
			continue
		}
		if m.Type == entity.CapitalInjection {
			sum = sum.Add(m.Amount)
		} else {
			sum = sum.Sub(m.Amount)
		}
	}
	return sum, nil
}

type fakePortfolioRepo struct {
	summary repository.PortfolioSummary
}

func (r *fakePortfolioRepo) Create(c *entity.Credit) error { panic("no usado") }
func (r *fakePortfolioRepo) GetByID(companyID, id string) (*entity.Credit, error) {
	panic("no usado")
}
func (r *fakePortfolioRepo) GetActiveByCustomer(companyID, customerID string) (*entity.Credit, error) {
	panic("no usado")
}
func (r *fakePortfolioRepo) HistoryByCustomer(companyID, customerID string) ([]*entity.Credit, error) {
	panic("no usado")
}
func (r *fakePortfolioRepo) ListActiveByRoute(companyID, routeID string) ([]*entity.Credit, error) {
	panic("no usado")
}
func (r *fakePortfolioRepo) ApplyBalanceUpdate(u repository.BalanceUpdate) error { panic("no usado") }
func (r *fakePortfolioRepo) SumPrincipalByIssuerAndDay(companyID, issuerID string, from, to time.Time) (decimal.Decimal, error) {
	panic("no usado")
}
func (r *fakePortfolioRepo) PortfolioSummary(companyID string) (*repository.PortfolioSummary, error) {
	s := r.summary
	return &s, nil
}

func newUseCase(t *testing.T) (*capital.UseCase, *fakeMovementRepo, *fakePortfolioRepo) {
	t.Helper()
	movements := &fakeMovementRepo{}
	credits := &fakePortfolioRepo{}
	clock := &domain.FixedClock{T: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	log := logger.New(logger.Config{Level: "error"})
	return capital.NewUseCase(movements, credits, clock, log), movements, credits
}

func inject(t *testing.T, uc *capital.UseCase, amount int64) {
	t.Helper()
	_, err := uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: entity.CapitalInjection, Amount: decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
}

func TestRegisterMovement_InyeccionSumaAlDisponible(t *testing.T) {
	uc, movements, _ := newUseCase(t)
	inject(t, uc, 5000)

	available, err := movements.Balance(testCompany)
	require.NoError(t, err)
	assert.True(t, available.Equal(decimal.NewFromInt(5000)))
}

func TestRegisterMovement_RetiroExigeAutorizacion(t *testing.T) {
	uc, _, _ := newUseCase(t)
	inject(t, uc, 5000)

	_, err := uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: entity.CapitalWithdrawal, Amount: decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrOverrideRequired, "el retiro sin autorización no procede")

	resp, err := uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: entity.CapitalWithdrawal, Amount: decimal.NewFromInt(1000), Override: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CapitalWithdrawal, resp.Type)
}

func TestRegisterMovement_RetiroNoPuedeDejarNegativo(t *testing.T) {
	uc, _, _ := newUseCase(t)
	inject(t, uc, 500)

	_, err := uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: entity.CapitalWithdrawal, Amount: decimal.NewFromInt(600), Override: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount, "no se puede retirar más de lo disponible")
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	uc, _, _ := newUseCase(t)

	_, err := uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: "PRESTAMO", Amount: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.RegisterMovement(testCompany, testAdmin, dto.CapitalMovementRequest{
		Type: entity.CapitalInjection, Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestSummary_CombinaDisponibleYCartera(t *testing.T) {
	uc, _, credits := newUseCase(t)
	inject(t, uc, 10000)
	credits.summary = repository.PortfolioSummary{
		StreetCapital:   decimal.NewFromInt(7200),
		ProjectedProfit: decimal.NewFromInt(1200),
		ActiveCredits:   6,
	}

	resp, err := uc.Summary(testCompany)
	require.NoError(t, err)

	assert.True(t, resp.Available.Equal(decimal.NewFromInt(10000)))
	assert.True(t, resp.StreetCapital.Equal(decimal.NewFromInt(7200)))
	assert.True(t, resp.ProjectedProfit.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, int64(6), resp.ActiveCredits)
}

func TestListMovements_SoloDeLaEmpresa(t *testing.T) {
	uc, movements, _ := newUseCase(t)
	inject(t, uc, 100)
	movements.movements = append(movements.movements, &entity.CapitalMovement{
		ID: "ajeno", CompanyID: "otra-empresa", Type: entity.CapitalInjection,
		Amount: decimal.NewFromInt(999),
	})

	list, err := uc.ListMovements(testCompany, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.NewFromInt(100)))
}
