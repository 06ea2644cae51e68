package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// CreateSaleRequest apertura de una venta.
type CreateSaleRequest struct {
	CustomerName string `json:"customer_name"`
}

// AddItemRequest agrega una línea al carrito.
type AddItemRequest struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
}

// DiscountRequest aplica un descuento a la venta.
type DiscountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// SaleResponse representación completa de una venta.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customer_name"`
	CashierID    string             `json:"cashier_id"`
	Date         time.Time          `json:"date"`
	Items        []SaleItemResponse `json:"items"`
	Discount     decimal.Decimal    `json:"discount"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	FinalAmount  decimal.Decimal    `json:"final_amount"`
	Status       string             `json:"status"`
}

// StockDeltaResponse descuento de stock aplicado al comprometer una venta.
type StockDeltaResponse struct {
	MedicineID string `json:"medicine_id"`
	Quantity   int    `json:"quantity"`
}

// CompleteSaleResponse resultado del protocolo de completar venta.
type CompleteSaleResponse struct {
	Outcome          string               `json:"outcome"`
	SaleID           string               `json:"sale_id"`
	Deltas           []StockDeltaResponse `json:"deltas,omitempty"`
	FailedIndex      *int                 `json:"failed_index,omitempty"`
	FailedMedicineID string               `json:"failed_medicine_id,omitempty"`
	Reason           string               `json:"reason,omitempty"`
}

// ToSaleResponse mapea la entidad a su DTO.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}
	return SaleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		CashierID:    s.CashierID,
		Date:         s.Date,
		Items:        items,
		Discount:     s.Discount,
		TotalAmount:  s.TotalAmount,
		FinalAmount:  s.FinalAmount,
		Status:       s.Status,
	}
}

// ToSaleResponses mapea una lista de ventas.
func ToSaleResponses(list []*entity.Sale) []SaleResponse {
	result := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		result = append(result, ToSaleResponse(s))
	}
	return result
}

// ToCompleteSaleResponse mapea el resultado del orquestador.
func ToCompleteSaleResponse(r *sales.CompleteResult) CompleteSaleResponse {
	resp := CompleteSaleResponse{
		Outcome:          r.Outcome,
		SaleID:           r.SaleID,
		FailedMedicineID: r.FailedMedicineID,
		Reason:           r.Reason,
	}
	for _, d := range r.Deltas {
		resp.Deltas = append(resp.Deltas, StockDeltaResponse{MedicineID: d.MedicineID, Quantity: d.Quantity})
	}
	if r.Outcome == sales.OutcomeFailed {
		idx := r.FailedIndex
		resp.FailedIndex = &idx
	}
	return resp
}
