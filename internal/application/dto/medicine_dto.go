package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// CreateMedicineRequest alta de medicamento en el catálogo.
type CreateMedicineRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	SupplierID  string          `json:"supplier_id"`
	Threshold   int             `json:"threshold"`
	Description string          `json:"description"`
}

// UpdateMedicineRequest actualización de datos descriptivos (sin stock).
type UpdateMedicineRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	ExpiryDate  time.Time       `json:"expiry_date"`
	SupplierID  string          `json:"supplier_id"`
	Description string          `json:"description"`
}

// QuantityRequest cantidad para restock.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetStockRequest override administrativo de stock.
type SetStockRequest struct {
	Stock int `json:"stock"`
}

// ThresholdRequest cambio del punto de reorden.
type ThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// MedicineResponse representación de un medicamento con sus predicados derivados.
type MedicineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	Threshold    int             `json:"threshold"`
	ExpiryDate   time.Time       `json:"expiry_date"`
	SupplierID   string          `json:"supplier_id"`
	Description  string          `json:"description"`
	LowStock     bool            `json:"low_stock"`
	OutOfStock   bool            `json:"out_of_stock"`
	Expired      bool            `json:"expired"`
}

// ToMedicineResponse mapea la entidad a su DTO.
func ToMedicineResponse(m *entity.Medicine) MedicineResponse {
	now := time.Now()
	return MedicineResponse{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Stock:       m.Stock,
		Threshold:   m.Threshold,
		ExpiryDate:  m.ExpiryDate,
		SupplierID:  m.SupplierID,
		Description: m.Description,
		LowStock:    m.IsLowStock(),
		OutOfStock:  m.IsOutOfStock(),
		Expired:     m.IsExpired(now),
	}
}

// ToMedicineResponses mapea una lista de entidades.
func ToMedicineResponses(medicines []*entity.Medicine) []MedicineResponse {
	result := make([]MedicineResponse, 0, len(medicines))
	for _, m := range medicines {
		result = append(result, ToMedicineResponse(m))
	}
	return result
}
