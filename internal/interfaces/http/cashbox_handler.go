package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/cashbox"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
	"github.com/tu-usuario/cobranza-api/internal/domain/entity"
)

// CashboxHandler maneja el cierre de caja, liquidaciones y gastos.
type CashboxHandler struct {
	uc *cashbox.UseCase
}

// NewCashboxHandler construye el handler.
func NewCashboxHandler(uc *cashbox.UseCase) *CashboxHandler {
	return &CashboxHandler{uc: uc}
}

// collectorFrom resuelve sobre qué cobrador opera la petición: un admin
// puede pasar ?collector_id=..., el cobrador siempre opera sobre sí mismo.
func collectorFrom(c *fiber.Ctx) string {
	if id := c.Query("collector_id"); id != "" && GetRole(c) != entity.RoleCobrador {
		return id
	}
	return GetUserID(c)
}

// Reconcile cuadra la caja del día contra el efectivo contado.
// POST /api/cashbox/reconcile
func (h *CashboxHandler) Reconcile(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReconcileDay(companyID, collectorFrom(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DAY", Message: "el día debe tener formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Settlement devuelve la liquidación del cobrador, hoy o un día pasado.
// GET /api/cashbox/settlement?day=YYYY-MM-DD
func (h *CashboxHandler) Settlement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.SettlementFor(companyID, collectorFrom(c), c.Query("day"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DAY", Message: "el día debe tener formato YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddExpense registra un gasto del día.
// POST /api/cashbox/expenses
func (h *CashboxHandler) AddExpense(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.AddExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddExpense(companyID, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCajaCerrada):
			return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "CASHBOX_LOCKED", Message: "la caja está cerrada por horario nocturno"})
		case errors.Is(err, domain.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "el monto debe ser mayor a cero"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "el concepto es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveExpense anula un gasto (borrado lógico).
// DELETE /api/cashbox/expenses/:id
func (h *CashboxHandler) RemoveExpense(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if err := h.uc.RemoveExpense(companyID, c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrCajaCerrada):
			return c.Status(fiber.StatusLocked).JSON(dto.ErrorResponse{Code: "CASHBOX_LOCKED", Message: "la caja está cerrada por horario nocturno"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "gasto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListExpenses lista los gastos vigentes del día del cobrador.
// GET /api/cashbox/expenses
func (h *CashboxHandler) ListExpenses(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.ListExpenses(companyID, collectorFrom(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
