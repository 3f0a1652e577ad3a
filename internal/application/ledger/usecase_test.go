package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Los repos imitan la semántica real que importa al libro
// mayor: ApplyBalanceUpdate respeta el chequeo de versión y los pagos son
// append-only. El TxRunner de prueba no aporta atomicidad; solo pasa los
// repos al closure, igual que haría la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompany   = "empresa-1"
	testCustomer  = "cliente-1"
	testCollector = "cobrador-1"
)

type fakeCreditRepo struct {
	credits map[string]*entity.Credit
	// conflictos pendientes: cada ApplyBalanceUpdate consume uno y falla.
	forcedConflicts int
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{credits: make(map[string]*entity.Credit)}
}

func (r *fakeCreditRepo) Create(c *entity.Credit) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *fakeCreditRepo) GetByID(companyID, id string) (*entity.Credit, error) {
	c, ok := r.credits[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetActiveByCustomer devuelve el ACTIVO más reciente, como el repo real.
func (r *fakeCreditRepo) GetActiveByCustomer(companyID, customerID string) (*entity.Credit, error) {
	var newest *entity.Credit
	for _, c := range r.credits {
		if c.CompanyID != companyID || c.CustomerID != customerID || c.State != entity.CreditActive {
			continue
		}
		if newest == nil || c.CreatedAt.After(newest.CreatedAt) {
			newest = c
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (r *fakeCreditRepo) HistoryByCustomer(companyID, customerID string) ([]*entity.Credit, error) {
	var out []*entity.Credit
	for _, c := range r.credits {
		if c.CompanyID == companyID && c.CustomerID == customerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) ListActiveByRoute(companyID, routeID string) ([]*entity.Credit, error) {
	return nil, nil
}

func (r *fakeCreditRepo) ApplyBalanceUpdate(u repository.BalanceUpdate) error {
	if r.forcedConflicts > 0 {
		r.forcedConflicts--
		return domain.ErrConcurrentUpdate
	}
	c, ok := r.credits[u.CreditID]
	if !ok || c.CompanyID != u.CompanyID {
		return domain.ErrNotFound
	}
	if c.Version != u.ExpectedVersion {
		return domain.ErrConcurrentUpdate
	}
	c.Balance = u.NewBalance
	c.State = u.NewState
	if u.LastPaymentAt != nil {
		c.LastPaymentAt = u.LastPaymentAt
	}
	c.Version++
	return nil
}

func (r *fakeCreditRepo) SumPrincipalByIssuerAndDay(companyID, issuerID string, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeCreditRepo) PortfolioSummary(companyID string) (*repository.PortfolioSummary, error) {
	return &repository.PortfolioSummary{}, nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(companyID, id string) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) ListByCredit(companyID, creditID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.CompanyID == companyID && p.CreditID == creditID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(companyID, id string) error {
	p, ok := r.payments[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.payments, id)
	return nil
}

func (r *fakePaymentRepo) SumByCollectorAndDay(companyID, collectorID string, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]*entity.Customer{
		testCustomer: {ID: testCustomer, CompanyID: testCompany, Name: "María Quispe", DNI: "45678912"},
	}}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCustomerRepo) GetByIDForUpdate(companyID, id string) (*entity.Customer, error) {
	return r.GetByID(companyID, id)
}
func (r *fakeCustomerRepo) GetByDNI(companyID, dni string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) ListByRoute(companyID, routeID string) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Search(companyID, term string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) UpdatePositions(companyID, routeID string, orderedIDs []string) error {
	return nil
}
func (r *fakeCustomerRepo) CountByRoute(companyID, routeID string) (int64, error) { return 0, nil }
func (r *fakeCustomerRepo) ReassignRoute(companyID, fromRouteID, toRouteID string) (int64, error) {
	return 0, nil
}

type fakeCompanyRepo struct{}

func (fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	if id != testCompany {
		return nil, nil
	}
	return &entity.Company{ID: testCompany, Name: "Inversiones El Progreso", Status: true}, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) Create(u *entity.User) error { return nil }
func (fakeUserRepo) GetByID(companyID, id string) (*entity.User, error) {
	return &entity.User{ID: id, CompanyID: companyID, Name: "Pedro Huamán", Role: entity.RoleCobrador}, nil
}
func (fakeUserRepo) FindByUsername(username string) (*entity.User, error) { return nil, nil }
func (fakeUserRepo) ListCollectors(companyID string) ([]*entity.User, error) {
	return nil, nil
}

type fakeReceiptGen struct {
	last ledger.ReceiptData
}

func (g *fakeReceiptGen) GenerateReceipt(data ledger.ReceiptData) ([]byte, error) {
	g.last = data
	return []byte("%PDF-recibo"), nil
}

type fakeTxRunner struct {
	creditRepo   repository.CreditRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(repository.CreditRepository, repository.PaymentRepository, repository.CustomerRepository) error) error {
	return fn(tx.creditRepo, tx.paymentRepo, tx.customerRepo)
}

type fixture struct {
	uc       *ledger.UseCase
	credits  *fakeCreditRepo
	payments *fakePaymentRepo
	receipts *fakeReceiptGen
	clock    *domain.FixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	credits := newFakeCreditRepo()
	payments := newFakePaymentRepo()
	customers := newFakeCustomerRepo()
	receipts := &fakeReceiptGen{}
	clock := &domain.FixedClock{T: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	log := logger.New(logger.Config{Level: "error"})
	tx := &fakeTxRunner{creditRepo: credits, paymentRepo: payments, customerRepo: customers}
	return &fixture{
		uc:       ledger.NewUseCase(tx, credits, payments, customers, fakeCompanyRepo{}, fakeUserRepo{}, receipts, clock, log),
		credits:  credits,
		payments: payments,
		receipts: receipts,
		clock:    clock,
	}
}

func (f *fixture) openCredit(t *testing.T) *dto.CreditResponse {
	t.Helper()
	resp, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(1000),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 20,
		Frequency:    entity.FrequencyDaily,
	})
	require.NoError(t, err)
	return resp
}

// ── Apertura ──────────────────────────────────────────────────────────────────

func TestOpenCredit_SaldoInicialIgualAlTotal(t *testing.T) {
	f := newFixture(t)
	resp := f.openCredit(t)

	assert.True(t, resp.Balance.Equal(decimal.NewFromInt(1200)), "el saldo inicial debe ser el total a pagar")
	assert.Equal(t, entity.CreditActive, resp.State)
	assert.True(t, resp.InstallmentAmount.Equal(decimal.NewFromInt(60)), "cuota de 1200/20")
}

func TestOpenCredit_RechazaActivoDuplicado(t *testing.T) {
	f := newFixture(t)
	f.openCredit(t)

	_, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(500),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 10,
		Frequency:    entity.FrequencyDaily,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveCredit, "un cliente no puede tener dos créditos activos")
}

func TestOpenCredit_OverrideSoloSiActivoVencido(t *testing.T) {
	f := newFixture(t)
	f.openCredit(t)

	// Con el activo al día, el override no abre la puerta.
	req := dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(500),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 10,
		Frequency:    entity.FrequencyDaily,
		Override:     true,
	}
	_, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveCredit, "override no aplica si el activo no está vencido")

	// Pasada la fecha fin estimada, el override sí permite el segundo crédito.
	f.clock.T = f.clock.T.AddDate(0, 0, 30)
	resp, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, req)
	require.NoError(t, err)
	assert.Equal(t, entity.CreditActive, resp.State)
}

func TestOpenCredit_OverrideDejaDosActivosYElNuevoManda(t *testing.T) {
	f := newFixture(t)
	first := f.openCredit(t)

	// Vencido el primero, un override abre el segundo sin tocar al primero.
	f.clock.T = f.clock.T.AddDate(0, 0, 30)
	second, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(500),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 10,
		Frequency:    entity.FrequencyDaily,
		Override:     true,
	})
	require.NoError(t, err, "el override autorizado debe poder desembolsar aunque exista un ACTIVO vencido")

	activos := 0
	for _, c := range f.credits.credits {
		if c.State == entity.CreditActive {
			activos++
		}
	}
	assert.Equal(t, 2, activos, "el crédito vencido sigue ACTIVO junto al nuevo")

	// La regla de duplicados se evalúa contra el ACTIVO más reciente: el
	// nuevo está al día, así que sin override no entra un tercero.
	_, err = f.uc.OpenCredit(context.Background(), testCompany, testCollector, dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(300),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 10,
		Frequency:    entity.FrequencyDaily,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateActiveCredit)

	newest, err := f.credits.GetActiveByCustomer(testCompany, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, second.ID, newest.ID, "el ACTIVO vigente es el más reciente")
	assert.NotEqual(t, first.ID, newest.ID)
}

func TestOpenCredit_GateDeRiesgoRojo(t *testing.T) {
	f := newFixture(t)
	now := f.clock.T

	// Tres créditos terminados tarde dejan al cliente en ROJO.
	for i := 0; i < 3; i++ {
		late := now.AddDate(0, 0, -10)
		end := now.AddDate(0, 0, -40)
		f.credits.credits[string(rune('a'+i))] = &entity.Credit{
			ID:               string(rune('a' + i)),
			CompanyID:        testCompany,
			CustomerID:       testCustomer,
			TotalDue:         decimal.NewFromInt(600),
			Balance:          decimal.Zero,
			State:            entity.CreditFinished,
			EstimatedEndDate: end,
			LastPaymentAt:    &late,
			Version:          1,
		}
	}

	req := dto.OpenCreditRequest{
		CustomerID:   testCustomer,
		Principal:    decimal.NewFromInt(1000),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 20,
		Frequency:    entity.FrequencyDaily,
	}
	_, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, req)
	assert.ErrorIs(t, err, domain.ErrRiskGate, "cliente en ROJO requiere autorización")

	req.Override = true
	_, err = f.uc.OpenCredit(context.Background(), testCompany, testCollector, req)
	assert.NoError(t, err, "con override el desembolso procede")
}

func TestOpenCredit_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.OpenCredit(context.Background(), testCompany, testCollector, dto.OpenCreditRequest{
		CustomerID:   "no-existe",
		Principal:    decimal.NewFromInt(1000),
		RatePercent:  decimal.NewFromInt(20),
		Installments: 20,
		Frequency:    entity.FrequencyDaily,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

func TestApplyPayment_DescuentaDelSaldo(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	credit, payment, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	assert.True(t, credit.Balance.Equal(decimal.NewFromInt(1140)), "1200 − 60 = 1140")
	assert.Equal(t, entity.CreditActive, credit.State)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, entity.MethodCash, payment.Method, "sin método explícito el cobro es EFECTIVO")
}

func TestApplyPayment_SobrepagoLlevaSaldoACeroYFinaliza(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	credit, payment, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	assert.True(t, credit.Balance.IsZero(), "el sobrepago clava el saldo en 0, nunca negativo")
	assert.Equal(t, entity.CreditFinished, credit.State, "saldo 0 ⇒ FINALIZADO")
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(1500)), "se registra el monto entregado completo")
}

func TestApplyPayment_PagoExactoFinaliza(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	credit, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.True(t, credit.Balance.IsZero())
	assert.Equal(t, entity.CreditFinished, credit.State)
}

func TestApplyPayment_MontoInvalido(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, _, err = f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyPayment_AislamientoPorEmpresa(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, _, err := f.uc.ApplyPayment(context.Background(), "otra-empresa", testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un crédito de otra empresa no es visible")
}

// El update optimista reintenta sobre el saldo fresco: un conflicto forzado
// no se ve desde afuera, el cobro simplemente aterriza en el segundo intento.
func TestApplyPayment_ReintentaTrasConflicto(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	f.credits.forcedConflicts = 1
	credit, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.True(t, credit.Balance.Equal(decimal.NewFromInt(1140)))
	assert.Len(t, f.payments.payments, 1, "solo un pago registrado pese al reintento")
}

func TestApplyPayment_ConflictoPersistenteSeDevuelve(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	f.credits.forcedConflicts = 10
	_, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate, "agotados los reintentos el conflicto sube al caller")
	assert.Empty(t, f.payments.payments, "sin update de saldo no se registra pago")
}

// Dos cobros "simultáneos" sobre saldo 15: el segundo ve el saldo fresco y
// el total aplicado nunca excede lo que lleva el saldo a negativo.
func TestApplyPayment_DosCobrosSerializados(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	// Dejar el saldo en 15.
	_, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(1185),
	})
	require.NoError(t, err)

	first, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, first.Balance.Equal(decimal.NewFromInt(5)))

	second, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, second.Balance.IsZero(), "el segundo cobro parte del saldo ya descontado y clava en 0")
	assert.Equal(t, entity.CreditFinished, second.State)
}

// ── Reversa ───────────────────────────────────────────────────────────────────

func TestReversePayment_RestauraSaldoYEliminaPago(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, payment, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	credit, err := f.uc.ReversePayment(context.Background(), testCompany, payment.ID)
	require.NoError(t, err)

	assert.True(t, credit.Balance.Equal(decimal.NewFromInt(1200)), "la reversa restaura el saldo exacto")
	assert.Empty(t, f.payments.payments, "el pago revertido desaparece del historial")
}

func TestReversePayment_ReabreCreditoFinalizado(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, payment, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	credit, err := f.uc.ReversePayment(context.Background(), testCompany, payment.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.CreditActive, credit.State, "saldo > 0 reabre el crédito")
	assert.True(t, credit.Balance.Equal(decimal.NewFromInt(1200)))
}

func TestReversePayment_PagoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ReversePayment(context.Background(), testCompany, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Recibo ────────────────────────────────────────────────────────────────────

func TestPaymentReceipt_ArmaLosDatosDelRecibo(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, payment, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	pdf, err := f.uc.PaymentReceipt(testCompany, payment.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	assert.Equal(t, "Inversiones El Progreso", f.receipts.last.CompanyName)
	assert.Equal(t, "María Quispe", f.receipts.last.CustomerName)
	assert.True(t, f.receipts.last.Amount.Equal(decimal.NewFromInt(60)))
	assert.True(t, f.receipts.last.Balance.Equal(decimal.NewFromInt(1140)), "el recibo muestra el saldo tras el pago")
}

func TestPaymentReceipt_PagoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.PaymentReceipt(testCompany, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Historial ─────────────────────────────────────────────────────────────────

func TestHistoryFor_CreditosConSusPagos(t *testing.T) {
	f := newFixture(t)
	c := f.openCredit(t)

	_, _, err := f.uc.ApplyPayment(context.Background(), testCompany, testCollector, c.ID, dto.ApplyPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	hist, err := f.uc.HistoryFor(testCompany, testCustomer)
	require.NoError(t, err)

	require.Len(t, hist.Credits, 1)
	require.Len(t, hist.Payments[c.ID], 1)
	assert.True(t, hist.Payments[c.ID][0].Amount.Equal(decimal.NewFromInt(60)))
}
