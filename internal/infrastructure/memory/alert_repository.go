package memory

import (
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación en memoria del puerto AlertRepository.
type AlertRepo struct {
	s *Store
}

// NewAlertRepository construye el adaptador sobre el almacén compartido.
func NewAlertRepository(s *Store) *AlertRepo {
	return &AlertRepo{s: s}
}

// Create persiste una alerta nueva.
func (r *AlertRepo) Create(alert *entity.LowStockAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.alerts[alert.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}

// Update reemplaza una alerta existente.
func (r *AlertRepo) Update(alert *entity.LowStockAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.alerts[alert.ID]; !exists {
		return domain.ErrNotFound
	}
	r.s.alerts[alert.ID] = cloneAlert(alert)
	return nil
}

// GetByID devuelve una copia de la alerta, o nil si no existe.
func (r *AlertRepo) GetByID(id string) (*entity.LowStockAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	alert, exists := r.s.alerts[id]
	if !exists {
		return nil, nil
	}
	return cloneAlert(alert), nil
}

// GetOpenByMedicine devuelve la alerta ACTIVE o DISMISSED del medicamento.
func (r *AlertRepo) GetOpenByMedicine(medicineID string) (*entity.LowStockAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, alert := range r.s.alerts {
		if alert.MedicineID == medicineID && alert.Status != entity.AlertStatusResolved {
			return cloneAlert(alert), nil
		}
	}
	return nil, nil
}

// ListActive devuelve copias de las alertas ACTIVE.
func (r *AlertRepo) ListActive() ([]*entity.LowStockAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.LowStockAlert, 0)
	for _, alert := range r.s.alerts {
		if alert.Status == entity.AlertStatusActive {
			result = append(result, cloneAlert(alert))
		}
	}
	return result, nil
}

// List devuelve copias de todas las alertas.
func (r *AlertRepo) List() ([]*entity.LowStockAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.LowStockAlert, 0, len(r.s.alerts))
	for _, alert := range r.s.alerts {
		result = append(result, cloneAlert(alert))
	}
	return result, nil
}
