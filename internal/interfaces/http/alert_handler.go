package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
)

// AlertHandler maneja las peticiones HTTP de alertas de stock bajo.
type AlertHandler struct {
	alerts *inventory.AlertService
}

// NewAlertHandler construye el handler.
func NewAlertHandler(alerts *inventory.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListActive lista las alertas activas ordenadas por urgencia.
func (h *AlertHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.alerts.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAlertResponses(out))
}

// Dismiss descarta una alerta registrando quién la descartó.
func (h *AlertHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.alerts.Dismiss(c.Context(), c.Params("id"), GetCashierID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reactivate vuelve a activar una alerta descartada.
func (h *AlertHandler) Reactivate(c *fiber.Ctx) error {
	if err := h.alerts.Reactivate(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Sweep reevalúa las alertas de todo el catálogo contra el stock actual.
func (h *AlertHandler) Sweep(c *fiber.Ctx) error {
	if err := h.alerts.Sweep(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
