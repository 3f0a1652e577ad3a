package cashbox

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/pkg/config"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// Clasificación del cuadre de caja.
const (
	ClassBalanced = "CUADRADA"
	ClassSurplus  = "SOBRANTE"
	ClassShortage = "FALTANTE"
)

// UseCase cierra la caja diaria de cada cobrador. La ventana "día" se
// calcula en la zona horaria del negocio, no en UTC: el corte de un
// cobrador en Lima termina a medianoche de Lima.
type UseCase struct {
	paymentRepo repository.PaymentRepository
	creditRepo  repository.CreditRepository
	expenseRepo repository.ExpenseRepository
	clock       domain.Clock
	loc         *time.Location
	cfg         config.CreditoConfig
	log         *logger.Logger
}

// NewUseCase construye el cierre de caja. Si la zona horaria configurada no
// carga, cae a UTC (preferible a no arrancar).
func NewUseCase(paymentRepo repository.PaymentRepository, creditRepo repository.CreditRepository, expenseRepo repository.ExpenseRepository, clock domain.Clock, cfg config.CreditoConfig, log *logger.Logger) *UseCase {
	loc, err := time.LoadLocation(cfg.ZonaHoraria)
	if err != nil {
		log.Warn().Str("zona", cfg.ZonaHoraria).Err(err).Msg("zona horaria inválida, usando UTC")
		loc = time.UTC
	}
	return &UseCase{
		paymentRepo: paymentRepo,
		creditRepo:  creditRepo,
		expenseRepo: expenseRepo,
		clock:       clock,
		loc:         loc,
		cfg:         cfg,
		log:         log.WithComponent("caja"),
	}
}

// dayWindow devuelve [inicio, fin) del día local que contiene a now.
func (uc *UseCase) dayWindow(now time.Time) (time.Time, time.Time) {
	local := now.In(uc.loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, uc.loc)
	return from, from.AddDate(0, 0, 1)
}

// windowFor resuelve la ventana del día pedido ("2006-01-02" en la zona
// del negocio). Vacío significa hoy; permite releer el cuadre de una
// sesión pasada.
func (uc *UseCase) windowFor(day string) (time.Time, time.Time, error) {
	if day == "" {
		from, to := uc.dayWindow(uc.clock.Now())
		return from, to, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", day, uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return parsed, parsed.AddDate(0, 0, 1), nil
}

// checkLockout aplica el corte nocturno si está habilitado: pasada la hora
// de bloqueo los cobradores ya no pueden mover caja.
func (uc *UseCase) checkLockout() error {
	if !uc.cfg.BloqueoNocturno {
		return nil
	}
	if uc.clock.Now().In(uc.loc).Hour() >= uc.cfg.HoraBloqueo {
		return domain.ErrCajaCerrada
	}
	return nil
}

// ReconcileDay cuadra la caja del día de un cobrador:
//
//	teórico = (base + depósitos + cobros) − (gastos + desembolsos)
//	varianza = contado físico − teórico
//
// Varianza 0 es CUADRADA, positiva SOBRANTE, negativa FALTANTE. Los gastos
// anulados (borrado lógico) no entran en la suma.
func (uc *UseCase) ReconcileDay(companyID, collectorID string, in dto.ReconcileRequest) (*dto.ReconcileResponse, error) {
	from, to, err := uc.windowFor(in.Day)
	if err != nil {
		return nil, err
	}

	collections, err := uc.paymentRepo.SumByCollectorAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}
	disbursed, err := uc.creditRepo.SumPrincipalByIssuerAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenseRepo.SumByUserAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}

	totalIn := in.OpeningFloat.Add(in.ExtraDeposits).Add(collections)
	totalOut := expenses.Add(disbursed)
	theoretical := totalIn.Sub(totalOut)
	variance := in.PhysicalCount.Sub(theoretical)

	classification := ClassBalanced
	switch {
	case variance.GreaterThan(decimal.Zero):
		classification = ClassSurplus
	case variance.LessThan(decimal.Zero):
		classification = ClassShortage
	}

	if classification != ClassBalanced {
		uc.log.Warn().
			Str("collector_id", collectorID).
			Str("varianza", variance.String()).
			Str("clasificacion", classification).
			Msg("caja no cuadra")
	}

	return &dto.ReconcileResponse{
		CollectorID:    collectorID,
		Day:            from.Format("2006-01-02"),
		OpeningFloat:   in.OpeningFloat,
		ExtraDeposits:  in.ExtraDeposits,
		CollectionsIn:  collections,
		DisbursedOut:   disbursed,
		ExpensesOut:    expenses,
		TotalIn:        totalIn,
		TotalOut:       totalOut,
		Theoretical:    theoretical,
		PhysicalCount:  in.PhysicalCount,
		Variance:       variance,
		Classification: classification,
	}, nil
}

// SettlementFor es el corte individual del cobrador: cuánto debe entregar
// al admin ese día, sin contar base ni depósitos. day vacío es hoy.
func (uc *UseCase) SettlementFor(companyID, collectorID, day string) (*dto.SettlementResponse, error) {
	from, to, err := uc.windowFor(day)
	if err != nil {
		return nil, err
	}

	collected, err := uc.paymentRepo.SumByCollectorAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}
	disbursed, err := uc.creditRepo.SumPrincipalByIssuerAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenseRepo.SumByUserAndDay(companyID, collectorID, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.SettlementResponse{
		CollectorID: collectorID,
		Day:         from.Format("2006-01-02"),
		Collected:   collected,
		Disbursed:   disbursed,
		Expenses:    expenses,
		ToHandOver:  collected.Sub(disbursed).Sub(expenses),
	}, nil
}

// AddExpense registra un gasto de ruta del cobrador dentro del día en curso.
func (uc *UseCase) AddExpense(companyID, userID string, in dto.AddExpenseRequest) (*dto.ExpenseResponse, error) {
	if err := uc.checkLockout(); err != nil {
		return nil, err
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if in.Concept == "" {
		return nil, domain.ErrInvalidInput
	}

	e := &entity.Expense{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Concept:   in.Concept,
		Amount:    in.Amount,
		SpentAt:   uc.clock.Now(),
	}
	if err := uc.expenseRepo.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// RemoveExpense anula un gasto con borrado lógico: sale del cuadre pero la
// fila queda para auditoría.
func (uc *UseCase) RemoveExpense(companyID, expenseID string) error {
	if err := uc.checkLockout(); err != nil {
		return err
	}
	e, err := uc.expenseRepo.GetByID(companyID, expenseID)
	if err != nil {
		return err
	}
	if e == nil || e.IsDeleted() {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.SoftDelete(companyID, expenseID, uc.clock.Now())
}

// ListExpenses devuelve los gastos vivos del cobrador en el día en curso.
func (uc *UseCase) ListExpenses(companyID, userID string) ([]*dto.ExpenseResponse, error) {
	from, to := uc.dayWindow(uc.clock.Now())
	expenses, err := uc.expenseRepo.ListByUserAndDay(companyID, userID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		if e.IsDeleted() {
			continue
		}
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:      e.ID,
		Concept: e.Concept,
		Amount:  e.Amount,
		SpentAt: e.SpentAt,
	}
}
