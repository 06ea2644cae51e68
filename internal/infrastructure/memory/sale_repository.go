package memory

import (
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria del puerto SaleRepository.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el adaptador sobre el almacén compartido.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

// Create persiste una venta nueva.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.sales[sale.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// Update reescribe la venta completa (cabecera + líneas).
func (r *SaleRepo) Update(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.sales[sale.ID]; !exists {
		return domain.ErrNotFound
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

// GetByID devuelve una copia de la venta, o nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, exists := r.s.sales[id]
	if !exists {
		return nil, nil
	}
	return cloneSale(sale), nil
}

// List devuelve copias de todas las ventas.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		result = append(result, cloneSale(sale))
	}
	return result, nil
}
