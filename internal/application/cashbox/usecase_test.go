package cashbox_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cobranza-api/internal/application/cashbox"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de sumas diarias. Solo se implementa lo que el cierre de caja toca;
// el resto entra en pánico a propósito para delatar usos no previstos.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompany   = "empresa-1"
	testCollector = "cobrador-1"
)

type fakeSums struct {
	collections decimal.Decimal
}

func (f *fakeSums) Create(p *entity.Payment) error { panic("no usado") }
func (f *fakeSums) GetByID(companyID, id string) (*entity.Payment, error) {
	panic("no usado")
}
func (f *fakeSums) ListByCredit(companyID, creditID string) ([]*entity.Payment, error) {
	panic("no usado")
}
func (f *fakeSums) Delete(companyID, id string) error { panic("no usado") }
func (f *fakeSums) SumByCollectorAndDay(companyID, collectorID string, from, to time.Time) (decimal.Decimal, error) {
	return f.collections, nil
}

type fakeCreditSums struct {
	disbursed decimal.Decimal
}

func (f *fakeCreditSums) Create(c *entity.Credit) error { panic("no usado") }
func (f *fakeCreditSums) GetByID(companyID, id string) (*entity.Credit, error) {
	panic("no usado")
}
func (f *fakeCreditSums) GetActiveByCustomer(companyID, customerID string) (*entity.Credit, error) {
	panic("no usado")
}
func (f *fakeCreditSums) HistoryByCustomer(companyID, customerID string) ([]*entity.Credit, error) {
	panic("no usado")
}
func (f *fakeCreditSums) ListActiveByRoute(companyID, routeID string) ([]*entity.Credit, error) {
	panic("no usado")
}
func (f *fakeCreditSums) ApplyBalanceUpdate(u repository.BalanceUpdate) error { panic("no usado") }
func (f *fakeCreditSums) SumPrincipalByIssuerAndDay(companyID, issuerID string, from, to time.Time) (decimal.Decimal, error) {
	return f.disbursed, nil
}
func (f *fakeCreditSums) PortfolioSummary(companyID string) (*repository.PortfolioSummary, error) {
	panic("no usado")
}

type fakeExpenseRepo struct {
	expenses map[string]*entity.Expense
}

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*entity.Expense)}
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(companyID, id string) (*entity.Expense, error) {
	e, ok := r.expenses[id]
	if !ok || e.CompanyID != companyID {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) ListByUserAndDay(companyID, userID string, from, to time.Time) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.CompanyID == companyID && e.UserID == userID && !e.SpentAt.Before(from) && e.SpentAt.Before(to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) SumByUserAndDay(companyID, userID string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.expenses {
		if e.CompanyID == companyID && e.UserID == userID && !e.IsDeleted() && !e.SpentAt.Before(from) && e.SpentAt.Before(to) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum, nil
}

func (r *fakeExpenseRepo) SoftDelete(companyID, id string, at time.Time) error {
	e, ok := r.expenses[id]
	if !ok || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	e.DeletedAt = &at
	return nil
}

type fixture struct {
	uc       *cashbox.UseCase
	payments *fakeSums
	credits  *fakeCreditSums
	expenses *fakeExpenseRepo
	clock    *domain.FixedClock
}

func newFixture(t *testing.T, cfg config.CreditoConfig) *fixture {
	t.Helper()
	if cfg.ZonaHoraria == "" {
		cfg.ZonaHoraria = "UTC"
	}
	payments := &fakeSums{collections: decimal.Zero}
	credits := &fakeCreditSums{disbursed: decimal.Zero}
	expenses := newFakeExpenseRepo()
	clock := &domain.FixedClock{T: time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)}
	log := logger.New(logger.Config{Level: "error"})
	return &fixture{
		uc:       cashbox.NewUseCase(payments, credits, expenses, clock, cfg, log),
		payments: payments,
		credits:  credits,
		expenses: expenses,
		clock:    clock,
	}
}

// ── Cuadre ────────────────────────────────────────────────────────────────────

// Vector de referencia del cuadre:
//
//	base 100 + depósitos 50 + cobros 300 − prestado 200 − gastos 30 = 220
//	contado 200 → varianza −20 → FALTANTE
func TestReconcileDay_VectorReferencia(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})
	f.payments.collections = decimal.NewFromInt(300)
	f.credits.disbursed = decimal.NewFromInt(200)
	f.expenses.expenses["g1"] = &entity.Expense{
		ID: "g1", CompanyID: testCompany, UserID: testCollector,
		Amount: decimal.NewFromInt(30), SpentAt: f.clock.T,
	}

	resp, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{
		OpeningFloat:  decimal.NewFromInt(100),
		ExtraDeposits: decimal.NewFromInt(50),
		PhysicalCount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.True(t, resp.Theoretical.Equal(decimal.NewFromInt(220)), "teórico debe ser 220, fue %s", resp.Theoretical)
	assert.True(t, resp.Variance.Equal(decimal.NewFromInt(-20)), "varianza debe ser −20, fue %s", resp.Variance)
	assert.Equal(t, cashbox.ClassShortage, resp.Classification, "contó menos de lo que debía tener")
}

func TestReconcileDay_CajaCuadrada(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})
	f.payments.collections = decimal.NewFromInt(300)

	resp, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{
		OpeningFloat:  decimal.NewFromInt(100),
		PhysicalCount: decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.True(t, resp.Variance.IsZero())
	assert.Equal(t, cashbox.ClassBalanced, resp.Classification)
}

func TestReconcileDay_Sobrante(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	resp, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{
		OpeningFloat:  decimal.NewFromInt(100),
		PhysicalCount: decimal.NewFromInt(110),
	})
	require.NoError(t, err)
	assert.Equal(t, cashbox.ClassSurplus, resp.Classification)
	assert.True(t, resp.Variance.Equal(decimal.NewFromInt(10)))
}

// Un gasto anulado no cuenta en el teórico: el fake replica la exclusión de
// tombstones que hace la consulta real.
func TestReconcileDay_GastoAnuladoNoCuenta(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})
	deleted := f.clock.T
	f.expenses.expenses["g1"] = &entity.Expense{
		ID: "g1", CompanyID: testCompany, UserID: testCollector,
		Amount: decimal.NewFromInt(30), SpentAt: f.clock.T, DeletedAt: &deleted,
	}

	resp, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{
		OpeningFloat:  decimal.NewFromInt(100),
		PhysicalCount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, cashbox.ClassBalanced, resp.Classification, "el gasto anulado no debe restar")
}

// ── Corte individual ──────────────────────────────────────────────────────────

func TestSettlementFor_CobradoMenosPrestadoMenosGastos(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})
	f.payments.collections = decimal.NewFromInt(500)
	f.credits.disbursed = decimal.NewFromInt(150)
	f.expenses.expenses["g1"] = &entity.Expense{
		ID: "g1", CompanyID: testCompany, UserID: testCollector,
		Amount: decimal.NewFromInt(20), SpentAt: f.clock.T,
	}

	resp, err := f.uc.SettlementFor(testCompany, testCollector, "")
	require.NoError(t, err)
	assert.True(t, resp.ToHandOver.Equal(decimal.NewFromInt(330)), "500 − 150 − 20 = 330")
	assert.Equal(t, "2024-03-01", resp.Day)
}

func TestSettlementFor_DiaPasado(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})
	// Gasto de ayer: no entra en el corte de hoy, sí en el de ayer.
	f.expenses.expenses["g1"] = &entity.Expense{
		ID: "g1", CompanyID: testCompany, UserID: testCollector,
		Amount: decimal.NewFromInt(20), SpentAt: f.clock.T.AddDate(0, 0, -1),
	}

	hoy, err := f.uc.SettlementFor(testCompany, testCollector, "")
	require.NoError(t, err)
	assert.True(t, hoy.Expenses.IsZero(), "el gasto de ayer no pertenece al día de hoy")

	ayer, err := f.uc.SettlementFor(testCompany, testCollector, "2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", ayer.Day)
	assert.True(t, ayer.Expenses.Equal(decimal.NewFromInt(20)), "releer una sesión pasada debe sumar sus gastos")
}

func TestReconcileDay_DiaInvalido(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	_, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{Day: "01/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el día debe venir como YYYY-MM-DD")
}

func TestReconcileDay_DiaPasadoReportaEseDia(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	resp, err := f.uc.ReconcileDay(testCompany, testCollector, dto.ReconcileRequest{Day: "2024-02-29"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", resp.Day)
}

// ── Gastos ────────────────────────────────────────────────────────────────────

func TestAddExpense_Registra(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	resp, err := f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{
		Concept: "gasolina",
		Amount:  decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, "gasolina", resp.Concept)

	list, err := f.uc.ListExpenses(testCompany, testCollector)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddExpense_Validaciones(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	_, err := f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{Concept: "x", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el concepto es obligatorio")
}

func TestRemoveExpense_BorradoLogico(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{})

	resp, err := f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{
		Concept: "pasajes", Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.RemoveExpense(testCompany, resp.ID))

	list, err := f.uc.ListExpenses(testCompany, testCollector)
	require.NoError(t, err)
	assert.Empty(t, list, "el gasto anulado sale de la lista")

	// La fila sigue existiendo como tombstone, pero anular dos veces no procede.
	err = f.uc.RemoveExpense(testCompany, resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Bloqueo nocturno ──────────────────────────────────────────────────────────

func TestBloqueoNocturno_CierraCajaTrasLaHora(t *testing.T) {
	cfg := config.CreditoConfig{BloqueoNocturno: true, HoraBloqueo: 22, ZonaHoraria: "UTC"}
	f := newFixture(t, cfg)
	f.clock.T = time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	_, err := f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{
		Concept: "gasolina", Amount: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrCajaCerrada, "después de las 22 no se mueve caja")
}

func TestBloqueoNocturno_DeshabilitadoNoAplica(t *testing.T) {
	f := newFixture(t, config.CreditoConfig{BloqueoNocturno: false, HoraBloqueo: 22})
	f.clock.T = time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)

	_, err := f.uc.AddExpense(testCompany, testCollector, dto.AddExpenseRequest{
		Concept: "gasolina", Amount: decimal.NewFromInt(10),
	})
	assert.NoError(t, err, "sin bloqueo configurado la caja opera a cualquier hora")
}
