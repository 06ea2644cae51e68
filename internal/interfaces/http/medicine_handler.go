package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
)

// MedicineHandler maneja las peticiones HTTP del catálogo y del inventario.
type MedicineHandler struct {
	catalog *inventory.CatalogService
	ledger  *inventory.StockLedger
	queries *inventory.MedicineQueryService
}

// NewMedicineHandler construye el handler.
func NewMedicineHandler(catalog *inventory.CatalogService, ledger *inventory.StockLedger, queries *inventory.MedicineQueryService) *MedicineHandler {
	return &MedicineHandler{catalog: catalog, ledger: ledger, queries: queries}
}

// Create registra un medicamento nuevo en el catálogo.
func (h *MedicineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.catalog.RegisterMedicine(c.Context(), in.Name, in.Category, in.Stock, in.Price, in.ExpiryDate, in.SupplierID, in.Threshold, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMedicineResponse(out))
}

// Update actualiza los datos descriptivos. El stock no se toca por esta vía.
func (h *MedicineHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateMedicineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.catalog.UpdateDetails(c.Context(), id, in.Name, in.Category, in.Price, in.ExpiryDate, in.SupplierID, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponse(out))
}

// GetByID obtiene un medicamento por su ID.
func (h *MedicineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.queries.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponse(out))
}

// List lista el catálogo completo.
func (h *MedicineHandler) List(c *fiber.Ctx) error {
	out, err := h.queries.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// LowStock lista los medicamentos en o por debajo de su punto de reorden.
func (h *MedicineHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.queries.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// OutOfStock lista los medicamentos agotados.
func (h *MedicineHandler) OutOfStock(c *fiber.Ctx) error {
	out, err := h.queries.OutOfStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// Expired lista los medicamentos vencidos.
func (h *MedicineHandler) Expired(c *fiber.Ctx) error {
	out, err := h.queries.Expired(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// ExpiringSoon lista los medicamentos próximos a vencer.
func (h *MedicineHandler) ExpiringSoon(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	out, err := h.queries.ExpiringSoon(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// Search busca por nombre, categoría o ID.
func (h *MedicineHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el parámetro q es requerido"})
	}
	out, err := h.queries.Search(c.Context(), term)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponses(out))
}

// Restock agrega unidades al stock de un medicamento.
func (h *MedicineHandler) Restock(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.QuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.Restock(c.Context(), id, in.Quantity); err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponse(out))
}

// SetStock fija el stock en un valor absoluto (corrección administrativa).
func (h *MedicineHandler) SetStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.SetStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.SetAbsolute(c.Context(), id, in.Stock); err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponse(out))
}

// SetThreshold cambia el punto de reorden y reevalúa alertas.
func (h *MedicineHandler) SetThreshold(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.ledger.UpdateThreshold(c.Context(), id, in.Threshold); err != nil {
		return respondError(c, err)
	}
	out, err := h.queries.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMedicineResponse(out))
}
