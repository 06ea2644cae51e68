package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain"
)

// SaleHandler maneja las peticiones HTTP de ventas: carrito, cierre y consultas.
type SaleHandler struct {
	cart     *sales.CartService
	complete *sales.CompleteSaleService
	queries  *sales.SalesQueryService
}

// NewSaleHandler construye el handler.
func NewSaleHandler(cart *sales.CartService, complete *sales.CompleteSaleService, queries *sales.SalesQueryService) *SaleHandler {
	return &SaleHandler{cart: cart, complete: complete, queries: queries}
}

// Create abre una venta PENDING para el cajero autenticado.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cart.Create(c.Context(), in.CustomerName, GetCashierID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(out))
}

// GetByID obtiene una venta por su ID.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.cart.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(out))
}

// AddItem agrega o acumula una línea en la venta.
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cart.AddItem(c.Context(), c.Params("id"), in.MedicineID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(out))
}

// RemoveItem elimina una línea de la venta.
func (h *SaleHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.cart.RemoveItem(c.Context(), c.Params("id"), c.Params("medicineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(out))
}

// ApplyDiscount aplica un descuento sobre el total de la venta.
func (h *SaleHandler) ApplyDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.cart.ApplyDiscount(c.Context(), c.Params("id"), in.Discount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(out))
}

// Cancel cancela una venta pendiente. El stock no se toca porque las ventas
// pendientes nunca reservan inventario.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.cart.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(out))
}

// Complete ejecuta el protocolo de cierre de venta. Un resultado FAILED por
// stock insuficiente se reporta con 409 y el detalle de la línea que falló;
// la venta sigue PENDING y puede corregirse y reintentarse.
func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	result, err := h.complete.CompleteSale(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInventoryInconsistent) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Code:    "INVENTORY_INCONSISTENT",
				Message: "fallo durante la compensación de stock: se requiere conciliación manual del inventario",
			})
		}
		return respondError(c, err)
	}
	if result.Outcome == sales.OutcomeFailed {
		return c.Status(fiber.StatusConflict).JSON(dto.ToCompleteSaleResponse(result))
	}
	return c.JSON(dto.ToCompleteSaleResponse(result))
}

// List lista las ventas, con filtros opcionales por estado, cliente o fecha.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()
	if status := c.Query("status"); status != "" {
		out, err := h.queries.ByStatus(ctx, status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToSaleResponses(out))
	}
	if customer := c.Query("customer"); customer != "" {
		out, err := h.queries.ByCustomer(ctx, customer)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToSaleResponses(out))
	}
	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato esperado YYYY-MM-DD"})
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato esperado YYYY-MM-DD"})
		}
		out, err := h.queries.ByDateRange(ctx, start, end.AddDate(0, 0, 1))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToSaleResponses(out))
	}
	out, err := h.queries.List(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponses(out))
}

// Today lista las ventas del día.
func (h *SaleHandler) Today(c *fiber.Ctx) error {
	out, err := h.queries.Today(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponses(out))
}

// Stats devuelve los agregados de ventas completadas.
func (h *SaleHandler) Stats(c *fiber.Ctx) error {
	ctx := c.Context()
	total, err := h.queries.TotalCompletedAmount(ctx)
	if err != nil {
		return respondError(c, err)
	}
	today, err := h.queries.TodayCompletedAmount(ctx)
	if err != nil {
		return respondError(c, err)
	}
	count, err := h.queries.CompletedCount(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total_amount":    total,
		"today_amount":    today,
		"completed_count": count,
	})
}

// Top lista las ventas de mayor monto final.
func (h *SaleHandler) Top(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	out, err := h.queries.TopSales(c.Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponses(out))
}
