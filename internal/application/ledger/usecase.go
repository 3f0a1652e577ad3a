package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	domcredit "github.com/tu-usuario/cobranza-api/internal/domain/credit"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
	"github.com/tu-usuario/cobranza-api/internal/domain/repository"
	"github.com/tu-usuario/cobranza-api/internal/domain/risk"
	"github.com/tu-usuario/cobranza-api/pkg/logger"
)

// maxPaymentRetries reintentos del update optimista de saldo antes de
// devolver el conflicto al caller.
const maxPaymentRetries = 3

// UseCase es el libro mayor: abre créditos, aplica y revierte pagos, y
// expone el historial. Todo pasa por el TxRunner; el saldo solo cambia
// con chequeo de versión.
type UseCase struct {
	tx           TxRunner
	creditRepo   repository.CreditRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	receipts     ReceiptGenerator
	clock        domain.Clock
	log          *logger.Logger
}

// NewUseCase construye el libro mayor.
func NewUseCase(tx TxRunner, creditRepo repository.CreditRepository, paymentRepo repository.PaymentRepository, customerRepo repository.CustomerRepository, companyRepo repository.CompanyRepository, userRepo repository.UserRepository, receipts ReceiptGenerator, clock domain.Clock, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:           tx,
		creditRepo:   creditRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		receipts:     receipts,
		clock:        clock,
		log:          log.WithComponent("ledger"),
	}
}

// PreviewTerms corre la calculadora sin persistir. El resultado coincide
// bit a bit con lo que se guardaría al desembolsar (misma fórmula y redondeo).
func (uc *UseCase) PreviewTerms(in dto.PreviewTermsRequest) (*dto.TermsResponse, error) {
	terms, err := domcredit.CalculateTerms(in.Principal, in.RatePercent, in.Installments, in.Frequency, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	return &dto.TermsResponse{
		Principal:         terms.Principal,
		RatePercent:       terms.RatePercent,
		Interest:          terms.Interest,
		TotalDue:          terms.TotalDue,
		InstallmentAmount: terms.InstallmentAmount,
		Installments:      terms.Installments,
		Frequency:         terms.Frequency,
		EstimatedEndDate:  terms.EstimatedEndDate,
	}, nil
}

// OpenCredit desembolsa un crédito nuevo.
//
// Reglas de entrada:
//   - historial en ROJO → requiere override (domain.ErrRiskGate si falta)
//   - crédito ACTIVO existente → domain.ErrDuplicateActiveCredit, salvo
//     override y que ese activo ya esté vencido
//
// El uso del override queda en el log para auditoría.
func (uc *UseCase) OpenCredit(ctx context.Context, companyID, issuerID string, in dto.OpenCreditRequest) (*dto.CreditResponse, error) {
	customer, err := uc.customerRepo.GetByID(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clock.Now()

	history, err := uc.creditRepo.HistoryByCustomer(companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if risk.Score(history, now) == risk.LevelRed && !in.Override {
		return nil, domain.ErrRiskGate
	}

	terms, err := domcredit.CalculateTerms(in.Principal, in.RatePercent, in.Installments, in.Frequency, now)
	if err != nil {
		return nil, err
	}

	method := in.DisbursementMethod
	if method == "" {
		method = entity.MethodCash
	}

	c := &entity.Credit{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		CustomerID:         in.CustomerID,
		Principal:          terms.Principal,
		RatePercent:        terms.RatePercent,
		Interest:           terms.Interest,
		TotalDue:           terms.TotalDue,
		Balance:            terms.TotalDue,
		InstallmentAmount:  terms.InstallmentAmount,
		Installments:       terms.Installments,
		Frequency:          terms.Frequency,
		DisbursementMethod: method,
		StartDate:          terms.StartDate,
		EstimatedEndDate:   terms.EstimatedEndDate,
		State:              entity.CreditActive,
		IssuerID:           issuerID,
		Version:            1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	// La regla de duplicados se decide dentro de la tx con la fila del
	// cliente bloqueada: dos aperturas concurrentes del mismo cliente se
	// serializan y la segunda ve el ACTIVO de la primera.
	err = uc.tx.Run(ctx, func(creditRepo repository.CreditRepository, _ repository.PaymentRepository, customerRepo repository.CustomerRepository) error {
		locked, err := customerRepo.GetByIDForUpdate(companyID, in.CustomerID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		active, err := creditRepo.GetActiveByCustomer(companyID, in.CustomerID)
		if err != nil {
			return err
		}
		if active != nil {
			if !in.Override || !active.IsOverdue(now) {
				return domain.ErrDuplicateActiveCredit
			}
		}
		return creditRepo.Create(c)
	})
	if err != nil {
		return nil, err
	}

	if in.Override {
		uc.log.Warn().
			Str("credit_id", c.ID).
			Str("customer_id", in.CustomerID).
			Str("issuer_id", issuerID).
			Msg("crédito desembolsado con override de autorización")
	}

	return uc.toCreditResponse(c, now), nil
}

// ApplyPayment registra un cobro contra un crédito y actualiza el saldo
// con chequeo optimista de versión. Si otro cobro gana la carrera, se
// reintenta sobre el saldo fresco hasta maxPaymentRetries veces.
//
// El sobrepago no es error: se registra el monto entregado completo y el
// saldo se lleva a 0 (el crédito pasa a FINALIZADO).
func (uc *UseCase) ApplyPayment(ctx context.Context, companyID, collectorID, creditID string, in dto.ApplyPaymentRequest) (*dto.CreditResponse, *dto.PaymentResponse, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, domain.ErrInvalidAmount
	}
	method := in.Method
	if method == "" {
		method = entity.MethodCash
	}

	var (
		updated *entity.Credit
		payment *entity.Payment
	)

	var lastErr error
	for attempt := 0; attempt < maxPaymentRetries; attempt++ {
		lastErr = uc.tx.Run(ctx, func(creditRepo repository.CreditRepository, paymentRepo repository.PaymentRepository, _ repository.CustomerRepository) error {
			c, err := creditRepo.GetByID(companyID, creditID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.ErrNotFound
			}

			now := uc.clock.Now()
			newBalance := c.Balance.Sub(in.Amount)
			newState := entity.CreditActive
			if newBalance.LessThanOrEqual(decimal.Zero) {
				newBalance = decimal.Zero
				newState = entity.CreditFinished
			}

			if err := creditRepo.ApplyBalanceUpdate(repository.BalanceUpdate{
				CreditID:        c.ID,
				CompanyID:       companyID,
				NewBalance:      newBalance,
				NewState:        newState,
				LastPaymentAt:   &now,
				ExpectedVersion: c.Version,
			}); err != nil {
				return err
			}

			p := &entity.Payment{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				CreditID:    c.ID,
				Amount:      in.Amount,
				Method:      method,
				CollectorID: collectorID,
				PaidAt:      now,
			}
			if err := paymentRepo.Create(p); err != nil {
				return err
			}

			c.Balance = newBalance
			c.State = newState
			c.LastPaymentAt = &now
			c.Version++
			updated = c
			payment = p
			return nil
		})

		if errors.Is(lastErr, domain.ErrConcurrentUpdate) {
			continue // otro cobro ganó; releer saldo y reintentar
		}
		break
	}
	if lastErr != nil {
		return nil, nil, lastErr
	}

	return uc.toCreditResponse(updated, uc.clock.Now()), toPaymentResponse(payment), nil
}

// ReversePayment deshace un cobro mal digitado: restaura el saldo, elimina
// el pago y, si el crédito había quedado FINALIZADO, lo reabre a ACTIVO.
// El core no impone ventana de tiempo; esa política es del caller.
func (uc *UseCase) ReversePayment(ctx context.Context, companyID, paymentID string) (*dto.CreditResponse, error) {
	var updated *entity.Credit

	var lastErr error
	for attempt := 0; attempt < maxPaymentRetries; attempt++ {
		lastErr = uc.tx.Run(ctx, func(creditRepo repository.CreditRepository, paymentRepo repository.PaymentRepository, _ repository.CustomerRepository) error {
			p, err := paymentRepo.GetByID(companyID, paymentID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			c, err := creditRepo.GetByID(companyID, p.CreditID)
			if err != nil {
				return err
			}
			if c == nil {
				return domain.ErrNotFound
			}

			newBalance := c.Balance.Add(p.Amount)
			newState := c.State
			if c.State == entity.CreditFinished && newBalance.GreaterThan(decimal.Zero) {
				newState = entity.CreditActive
			}

			// LastPaymentAt nil = conservar la fecha existente.
			if err := creditRepo.ApplyBalanceUpdate(repository.BalanceUpdate{
				CreditID:        c.ID,
				CompanyID:       companyID,
				NewBalance:      newBalance,
				NewState:        newState,
				ExpectedVersion: c.Version,
			}); err != nil {
				return err
			}
			if err := paymentRepo.Delete(companyID, p.ID); err != nil {
				return err
			}

			c.Balance = newBalance
			c.State = newState
			c.Version++
			updated = c
			return nil
		})

		if errors.Is(lastErr, domain.ErrConcurrentUpdate) {
			continue
		}
		break
	}
	if lastErr != nil {
		return nil, lastErr
	}

	uc.log.Info().Str("payment_id", paymentID).Str("credit_id", updated.ID).Msg("pago revertido")
	return uc.toCreditResponse(updated, uc.clock.Now()), nil
}

// PaymentReceipt arma el recibo PDF de un pago ya registrado.
func (uc *UseCase) PaymentReceipt(companyID, paymentID string) ([]byte, error) {
	p, err := uc.paymentRepo.GetByID(companyID, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.creditRepo.GetByID(companyID, p.CreditID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(companyID, c.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	collectorName := ""
	if collector, err := uc.userRepo.GetByID(companyID, p.CollectorID); err == nil && collector != nil {
		collectorName = collector.Name
	}

	return uc.receipts.GenerateReceipt(ReceiptData{
		CompanyName:   company.Name,
		CustomerName:  customer.Name,
		CustomerDNI:   customer.DNI,
		PaymentID:     p.ID,
		Amount:        p.Amount,
		Balance:       c.Balance,
		Method:        p.Method,
		PaidAt:        p.PaidAt.Format("02/01/2006 15:04"),
		CollectorName: collectorName,
	})
}

// GetCredit devuelve un crédito con su semáforo de mora recalculado.
func (uc *UseCase) GetCredit(companyID, creditID string) (*dto.CreditResponse, error) {
	c, err := uc.creditRepo.GetByID(companyID, creditID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toCreditResponse(c, uc.clock.Now()), nil
}

// HistoryFor devuelve el historial crediticio completo de un cliente:
// créditos con sus pagos, en join explícito (nada de acceso ad hoc).
func (uc *UseCase) HistoryFor(companyID, customerID string) (*dto.CreditHistoryResponse, error) {
	credits, err := uc.creditRepo.HistoryByCustomer(companyID, customerID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	out := &dto.CreditHistoryResponse{
		CustomerID: customerID,
		Credits:    make([]*dto.CreditResponse, 0, len(credits)),
		Payments:   make(map[string][]*dto.PaymentResponse, len(credits)),
	}
	for _, c := range credits {
		out.Credits = append(out.Credits, uc.toCreditResponse(c, now))
		payments, err := uc.paymentRepo.ListByCredit(companyID, c.ID)
		if err != nil {
			return nil, err
		}
		list := make([]*dto.PaymentResponse, 0, len(payments))
		for _, p := range payments {
			list = append(list, toPaymentResponse(p))
		}
		out.Payments[c.ID] = list
	}
	return out, nil
}

func (uc *UseCase) toCreditResponse(c *entity.Credit, now time.Time) *dto.CreditResponse {
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

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		CreditID:    p.CreditID,
		Amount:      p.Amount,
		Method:      p.Method,
		CollectorID: p.CollectorID,
		PaidAt:      p.PaidAt,
	}
}
