package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/ledger"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// CreditHandler maneja créditos, pagos y reversas (el libro mayor).
type CreditHandler struct {
	uc          *ledger.UseCase
	defaultRate decimal.Decimal
}

// NewCreditHandler construye el handler. defaultRate se usa cuando la
// petición no trae tasa de interés.
func NewCreditHandler(uc *ledger.UseCase, defaultRate decimal.Decimal) *CreditHandler {
	return &CreditHandler{uc: uc, defaultRate: defaultRate}
}

// PreviewTerms corre la calculadora sin persistir.
// POST /api/credits/preview
func (h *CreditHandler) PreviewTerms(c *fiber.Ctx) error {
	var in dto.PreviewTermsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RatePercent.IsZero() {
		in.RatePercent = h.defaultRate
	}
	out, err := h.uc.PreviewTerms(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTerms) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TERMS", Message: "capital, cuotas o frecuencia inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Open desembolsa un crédito nuevo.
// POST /api/credits
func (h *CreditHandler) Open(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.OpenCreditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RatePercent.IsZero() {
		in.RatePercent = h.defaultRate
	}
	out, err := h.uc.OpenCredit(c.Context(), companyID, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "cliente no encontrado"})
		case errors.Is(err, domain.ErrInvalidTerms):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TERMS", Message: "capital, cuotas o frecuencia inválidos"})
		case errors.Is(err, domain.ErrRiskGate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RISK_RED", Message: "cliente en rojo: requiere autorización de administrador"})
		case errors.Is(err, domain.ErrDuplicateActiveCredit):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ACTIVE_CREDIT_EXISTS", Message: "el cliente ya tiene un crédito activo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un crédito con su semáforo de mora.
// GET /api/credits/:id
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.GetCredit(companyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "crédito no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ApplyPayment registra un cobro contra un crédito.
// POST /api/credits/:id/payments
func (h *CreditHandler) ApplyPayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	credit, payment, err := h.uc.ApplyPayment(c.Context(), companyID, userID, c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "el monto debe ser mayor a cero"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "crédito no encontrado"})
		case errors.Is(err, domain.ErrConcurrentUpdate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_UPDATE", Message: "otro cobro actualizó el crédito, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"credit": credit, "payment": payment})
}

// ReversePayment deshace un cobro mal digitado.
// DELETE /api/payments/:id (solo ADMIN)
func (h *CreditHandler) ReversePayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.ReversePayment(c.Context(), companyID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		case errors.Is(err, domain.ErrConcurrentUpdate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_UPDATE", Message: "el crédito cambió durante la reversa, reintente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt devuelve el recibo PDF de un pago.
// GET /api/payments/:id/receipt
func (h *CreditHandler) Receipt(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	pdf, err := h.uc.PaymentReceipt(companyID, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="recibo.pdf"`)
	return c.Send(pdf)
}

// History devuelve el historial crediticio de un cliente.
// GET /api/customers/:id/credits
func (h *CreditHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.HistoryFor(companyID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
