package dto

import (
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// AlertResponse representación de una alerta de stock bajo.
type AlertResponse struct {
	ID           string     `json:"id"`
	MedicineID   string     `json:"medicine_id"`
	MedicineName string     `json:"medicine_name"`
	CurrentStock int        `json:"current_stock"`
	Threshold    int        `json:"threshold"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	DismissedAt  *time.Time `json:"dismissed_at,omitempty"`
	DismissedBy  string     `json:"dismissed_by,omitempty"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// ToAlertResponse mapea la entidad a su DTO.
func ToAlertResponse(a *entity.LowStockAlert) AlertResponse {
	return AlertResponse{
		ID:           a.ID,
		MedicineID:   a.MedicineID,
		MedicineName: a.MedicineName,
		CurrentStock: a.CurrentStock,
		Threshold:    a.Threshold,
		Priority:     string(a.Priority),
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
		DismissedAt:  a.DismissedAt,
		DismissedBy:  a.DismissedBy,
		ResolvedAt:   a.ResolvedAt,
	}
}

// ToAlertResponses mapea una lista de alertas.
func ToAlertResponses(alerts []*entity.LowStockAlert) []AlertResponse {
	result := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, ToAlertResponse(a))
	}
	return result
}
