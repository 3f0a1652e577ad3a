package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/capital"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// CapitalHandler maneja las inyecciones y retiros de capital del dueño.
type CapitalHandler struct {
	uc *capital.UseCase
}

// NewCapitalHandler construye el handler.
func NewCapitalHandler(uc *capital.UseCase) *CapitalHandler {
	return &CapitalHandler{uc: uc}
}

// RegisterMovement registra una inyección o retiro de capital.
// POST /api/capital/movements (solo ADMIN)
func (h *CapitalHandler) RegisterMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	var in dto.CapitalMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterMovement(companyID, userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TYPE", Message: "el tipo debe ser INYECCION o RETIRO"})
		case errors.Is(err, domain.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_AMOUNT", Message: "monto inválido o fondos insuficientes"})
		case errors.Is(err, domain.ErrOverrideRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OVERRIDE_REQUIRED", Message: "el retiro requiere confirmación explícita"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements lista los movimientos de capital paginados.
// GET /api/capital/movements
func (h *CapitalHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	out, err := h.uc.ListMovements(companyID, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary devuelve el capital disponible y la cartera en calle.
// GET /api/capital/summary
func (h *CapitalHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.Summary(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
