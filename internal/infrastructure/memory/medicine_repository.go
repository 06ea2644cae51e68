package memory

import (
	"time"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

// MedicineRepo implementación en memoria del puerto MedicineRepository.
type MedicineRepo struct {
	s *Store
}

// NewMedicineRepository construye el adaptador sobre el almacén compartido.
func NewMedicineRepository(s *Store) *MedicineRepo {
	return &MedicineRepo{s: s}
}

// Create persiste un medicamento nuevo.
func (r *MedicineRepo) Create(medicine *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.medicines[medicine.ID]; exists {
		return domain.ErrDuplicate
	}
	r.s.medicines[medicine.ID] = cloneMedicine(medicine)
	return nil
}

// Update reemplaza un medicamento existente. El stock persistido se preserva:
// las mutaciones de stock solo entran por ReduceStock/AddStock/SetStock.
func (r *MedicineRepo) Update(medicine *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, exists := r.s.medicines[medicine.ID]
	if !exists {
		return domain.ErrNotFound
	}
	updated := cloneMedicine(medicine)
	updated.Stock = current.Stock
	r.s.medicines[medicine.ID] = updated
	return nil
}

// GetByID devuelve una copia del medicamento, o nil si no existe.
func (r *MedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	medicine, exists := r.s.medicines[id]
	if !exists {
		return nil, nil
	}
	return cloneMedicine(medicine), nil
}

// List devuelve copias de todos los medicamentos.
func (r *MedicineRepo) List() ([]*entity.Medicine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	result := make([]*entity.Medicine, 0, len(r.s.medicines))
	for _, medicine := range r.s.medicines {
		result = append(result, cloneMedicine(medicine))
	}
	return result, nil
}

// ReduceStock decrementa si stock >= quantity; el chequeo y el decremento
// ocurren bajo el mismo lock (una sola operación lógica).
func (r *MedicineRepo) ReduceStock(id string, quantity int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	medicine, exists := r.s.medicines[id]
	if !exists {
		return 0, domain.ErrNotFound
	}
	if quantity > medicine.Stock {
		return 0, domain.ErrInsufficientStock
	}
	medicine.Stock -= quantity
	medicine.UpdatedAt = time.Now()
	return medicine.Stock, nil
}

// AddStock incrementa el stock.
func (r *MedicineRepo) AddStock(id string, quantity int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	medicine, exists := r.s.medicines[id]
	if !exists {
		return 0, domain.ErrNotFound
	}
	medicine.Stock += quantity
	medicine.UpdatedAt = time.Now()
	return medicine.Stock, nil
}

// SetStock fija el stock en un valor absoluto.
func (r *MedicineRepo) SetStock(id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	medicine, exists := r.s.medicines[id]
	if !exists {
		return domain.ErrNotFound
	}
	medicine.Stock = stock
	medicine.UpdatedAt = time.Now()
	return nil
}
