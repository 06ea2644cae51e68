package inventory

import (
	"context"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// AlertService mantiene el estado de las alertas de stock bajo consistente con
// el stock comprometido. El ledger lo invoca tras cada mutación (modelo push);
// Sweep ofrece además una pasada completa para barridos programados.
//
// Política de resolución: cuando el stock vuelve a superar el umbral, la alerta
// abierta transiciona automáticamente a RESOLVED.
type AlertService struct {
	alerts    repository.AlertRepository
	medicines repository.MedicineRepository
	log       *logger.Logger
}

// NewAlertService construye el servicio.
func NewAlertService(alerts repository.AlertRepository, medicines repository.MedicineRepository, log *logger.Logger) *AlertService {
	return &AlertService{alerts: alerts, medicines: medicines, log: log}
}

// Reconcile alinea la alerta del medicamento con su stock actual:
//   - stock bajo y sin alerta abierta -> crear alerta ACTIVE
//   - stock bajo y alerta abierta     -> refrescar observación y prioridad
//   - stock sobre el umbral           -> resolver la alerta abierta, si existe
func (s *AlertService) Reconcile(ctx context.Context, medicine *entity.Medicine) error {
	open, err := s.alerts.GetOpenByMedicine(medicine.ID)
	if err != nil {
		return err
	}

	if medicine.IsLowStock() {
		if open == nil {
			alert := entity.NewLowStockAlert(medicine.ID, medicine.Name, medicine.Stock, medicine.Threshold)
			if err := s.alerts.Create(alert); err != nil {
				return err
			}
			s.log.Info().
				Str("medicine_id", medicine.ID).
				Str("priority", string(alert.Priority)).
				Int("stock", medicine.Stock).
				Int("threshold", medicine.Threshold).
				Msg("alerta de stock bajo creada")
			return nil
		}
		open.Observe(medicine.Stock, medicine.Threshold)
		return s.alerts.Update(open)
	}

	if open != nil {
		if err := open.Resolve(); err != nil {
			return err
		}
		if err := s.alerts.Update(open); err != nil {
			return err
		}
		s.log.Info().
			Str("medicine_id", medicine.ID).
			Int("stock", medicine.Stock).
			Msg("alerta de stock bajo resuelta")
	}
	return nil
}

// Sweep reconcilia las alertas de todos los medicamentos.
func (s *AlertService) Sweep(ctx context.Context) error {
	medicines, err := s.medicines.List()
	if err != nil {
		return err
	}
	for _, medicine := range medicines {
		if err := s.Reconcile(ctx, medicine); err != nil {
			return err
		}
	}
	return nil
}

// Dismiss descarta una alerta por acción explícita del usuario identificado.
func (s *AlertService) Dismiss(ctx context.Context, alertID, userID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}
	alert, err := s.alerts.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if err := alert.Dismiss(userID); err != nil {
		return err
	}
	return s.alerts.Update(alert)
}

// Reactivate revierte un descarte.
func (s *AlertService) Reactivate(ctx context.Context, alertID string) error {
	alert, err := s.alerts.GetByID(alertID)
	if err != nil {
		return err
	}
	if alert == nil {
		return domain.ErrNotFound
	}
	if err := alert.Reactivate(); err != nil {
		return err
	}
	return s.alerts.Update(alert)
}

// ListActive lista las alertas ACTIVE.
func (s *AlertService) ListActive(ctx context.Context) ([]*entity.LowStockAlert, error) {
	return s.alerts.ListActive()
}
