package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/alert"
)

// Estados de una alerta de stock bajo.
const (
	AlertStatusActive    = "ACTIVE"
	AlertStatusDismissed = "DISMISSED"
	AlertStatusResolved  = "RESOLVED"
)

// LowStockAlert registra que un medicamento cruzó su punto de reorden.
// La prioridad se recalcula en cada observación de stock; la resolución es
// automática cuando el stock vuelve a superar el umbral.
type LowStockAlert struct {
	ID           string
	MedicineID   string
	MedicineName string
	CurrentStock int
	Threshold    int
	Priority     alert.Priority
	Status       string
	CreatedAt    time.Time
	DismissedAt  *time.Time
	DismissedBy  string
	ResolvedAt   *time.Time
}

// NewLowStockAlert crea una alerta ACTIVE con prioridad calculada.
func NewLowStockAlert(medicineID, medicineName string, currentStock, threshold int) *LowStockAlert {
	return &LowStockAlert{
		ID:           uuid.New().String(),
		MedicineID:   medicineID,
		MedicineName: medicineName,
		CurrentStock: currentStock,
		Threshold:    threshold,
		Priority:     alert.Evaluate(currentStock, threshold),
		Status:       AlertStatusActive,
		CreatedAt:    time.Now(),
	}
}

// Observe actualiza stock observado y umbral, y recalcula la prioridad.
func (a *LowStockAlert) Observe(currentStock, threshold int) {
	a.CurrentStock = currentStock
	a.Threshold = threshold
	a.Priority = alert.Evaluate(currentStock, threshold)
}

// Dismiss descarta la alerta por acción explícita de un usuario.
func (a *LowStockAlert) Dismiss(userID string) error {
	if a.Status != AlertStatusActive {
		return domain.ErrInvalidTransition
	}
	now := time.Now()
	a.Status = AlertStatusDismissed
	a.DismissedAt = &now
	a.DismissedBy = userID
	return nil
}

// Reactivate revierte un descarte.
func (a *LowStockAlert) Reactivate() error {
	if a.Status != AlertStatusDismissed {
		return domain.ErrInvalidTransition
	}
	a.Status = AlertStatusActive
	a.DismissedAt = nil
	a.DismissedBy = ""
	return nil
}

// Resolve marca la alerta como resuelta (el stock volvió sobre el umbral).
func (a *LowStockAlert) Resolve() error {
	if a.Status == AlertStatusResolved {
		return domain.ErrInvalidTransition
	}
	now := time.Now()
	a.Status = AlertStatusResolved
	a.ResolvedAt = &now
	return nil
}

// IsCritical indica agotamiento total del medicamento.
func (a *LowStockAlert) IsCritical() bool {
	return a.CurrentStock == 0
}
