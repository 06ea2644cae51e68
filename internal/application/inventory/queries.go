package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// MedicineQueryService expone lecturas sobre el catálogo: filtros puros sobre
// el estado actual de los medicamentos, sin efectos. Los predicados viven en la
// entidad (una sola definición de stock bajo / agotado / vencido).
type MedicineQueryService struct {
	medicines repository.MedicineRepository
}

// NewMedicineQueryService construye el servicio de consultas.
func NewMedicineQueryService(medicines repository.MedicineRepository) *MedicineQueryService {
	return &MedicineQueryService{medicines: medicines}
}

// GetByID obtiene un medicamento.
func (s *MedicineQueryService) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	medicine, err := s.medicines.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}
	return medicine, nil
}

// List devuelve todo el catálogo.
func (s *MedicineQueryService) List(ctx context.Context) ([]*entity.Medicine, error) {
	return s.medicines.List()
}

// LowStock lista medicamentos en o bajo su punto de reorden.
func (s *MedicineQueryService) LowStock(ctx context.Context) ([]*entity.Medicine, error) {
	return s.filter(func(m *entity.Medicine) bool { return m.IsLowStock() })
}

// OutOfStock lista medicamentos agotados.
func (s *MedicineQueryService) OutOfStock(ctx context.Context) ([]*entity.Medicine, error) {
	return s.filter(func(m *entity.Medicine) bool { return m.IsOutOfStock() })
}

// Expired lista medicamentos vencidos.
func (s *MedicineQueryService) Expired(ctx context.Context) ([]*entity.Medicine, error) {
	now := time.Now()
	return s.filter(func(m *entity.Medicine) bool { return m.IsExpired(now) })
}

// ExpiringSoon lista medicamentos que vencen dentro de days días.
func (s *MedicineQueryService) ExpiringSoon(ctx context.Context, days int) ([]*entity.Medicine, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	return s.filter(func(m *entity.Medicine) bool { return m.IsExpiringSoon(now, days) })
}

// Search busca por nombre, id o categoría (subcadena, sin distinguir mayúsculas).
func (s *MedicineQueryService) Search(ctx context.Context, term string) ([]*entity.Medicine, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.medicines.List()
	}
	return s.filter(func(m *entity.Medicine) bool {
		return strings.Contains(strings.ToLower(m.Name), term) ||
			strings.Contains(strings.ToLower(m.ID), term) ||
			strings.Contains(strings.ToLower(m.Category), term)
	})
}

func (s *MedicineQueryService) filter(keep func(*entity.Medicine) bool) ([]*entity.Medicine, error) {
	all, err := s.medicines.List()
	if err != nil {
		return nil, err
	}
	result := make([]*entity.Medicine, 0, len(all))
	for _, m := range all {
		if keep(m) {
			result = append(result, m)
		}
	}
	return result, nil
}
