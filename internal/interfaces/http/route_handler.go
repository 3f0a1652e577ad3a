package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/cobranza-api/internal/application/dto"
	"github.com/tu-usuario/cobranza-api/internal/application/routing"
	"github.com/tu-usuario/cobranza-api/internal/domain"
)

// RouteHandler maneja rutas de cobranza y el orden de visita.
type RouteHandler struct {
	uc *routing.UseCase
}

// NewRouteHandler construye el handler.
func NewRouteHandler(uc *routing.UseCase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// Create registra una ruta nueva.
// POST /api/routes
func (h *RouteHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CreateRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateRoute(companyID, in.Name, in.CollectorID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "el nombre de la ruta es obligatorio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista las rutas de la empresa.
// GET /api/routes
func (h *RouteHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.ListRoutes(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProposeSequence calcula un orden de visita sugerido por cercanía.
// GET /api/routes/:id/sequence
func (h *RouteHandler) ProposeSequence(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	out, err := h.uc.ProposeSequence(companyID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
		case errors.Is(err, domain.ErrNoGeoData):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_GEO_DATA", Message: "ningún cliente de la ruta tiene GPS registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CommitOrder persiste un orden de visita explícito.
// PUT /api/routes/:id/order
func (h *RouteHandler) CommitOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.CommitOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CommitOrder(companyID, c.Params("id"), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ORDER", Message: "el orden debe incluir exactamente los clientes de la ruta, sin repetidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MovePosition mueve un cliente a otra posición de la ruta.
// PATCH /api/routes/:id/positions
func (h *RouteHandler) MovePosition(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.MovePositionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.MovePosition(companyID, c.Params("id"), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta o cliente no encontrado"})
		case errors.Is(err, domain.ErrPositionOutOfRange):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "POSITION_OUT_OF_RANGE", Message: "la posición destino está fuera de rango"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reassign mueve en bloque los clientes de una ruta a otra.
// POST /api/routes/reassign (solo ADMIN)
func (h *RouteHandler) Reassign(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var in dto.ReassignRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkReassignRoute(companyID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "la ruta origen y destino no pueden ser la misma"})
		case errors.Is(err, domain.ErrOverrideRequired):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "OVERRIDE_REQUIRED", Message: "la reasignación masiva requiere confirmación explícita"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Stops arma la hoja de cobranza del día en orden de visita.
// GET /api/routes/:id/stops?lat=..&lon=..
func (h *RouteHandler) Stops(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	var lat, lon *float64
	if raw := c.Query("lat"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			lat = &v
		}
	}
	if raw := c.Query("lon"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			lon = &v
		}
	}
	out, err := h.uc.CollectionStops(companyID, c.Params("id"), lat, lon)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
