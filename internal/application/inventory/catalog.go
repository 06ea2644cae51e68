package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// CatalogService da de alta medicamentos en el catálogo. Es la frontera con la
// gestión de catálogo (externa al núcleo): aquí solo vive lo mínimo para que
// el ledger tenga sobre qué operar. El stock inicial también se reconcilia
// contra alertas, para que un medicamento creado ya bajo su umbral arranque
// con alerta activa.
type CatalogService struct {
	medicines repository.MedicineRepository
	alerts    *AlertService
}

// NewCatalogService construye el servicio.
func NewCatalogService(medicines repository.MedicineRepository, alerts *AlertService) *CatalogService {
	return &CatalogService{medicines: medicines, alerts: alerts}
}

// RegisterMedicine crea un medicamento (identidad asignada por la fábrica).
func (s *CatalogService) RegisterMedicine(ctx context.Context, name, category string, stock int, price decimal.Decimal, expiryDate time.Time, supplierID string, threshold int, description string) (*entity.Medicine, error) {
	medicine, err := entity.NewMedicine(name, category, stock, price, expiryDate, supplierID, threshold)
	if err != nil {
		return nil, err
	}
	medicine.Description = description
	if err := s.medicines.Create(medicine); err != nil {
		return nil, err
	}
	if err := s.alerts.Reconcile(ctx, medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// UpdateDetails actualiza los datos descriptivos de un medicamento. El stock
// no se toca por esta vía: toda mutación de stock pasa por el StockLedger.
func (s *CatalogService) UpdateDetails(ctx context.Context, id, name, category string, price decimal.Decimal, expiryDate time.Time, supplierID, description string) (*entity.Medicine, error) {
	if name == "" || price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	medicine, err := s.medicines.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}
	medicine.Name = name
	medicine.Category = category
	medicine.Price = price
	medicine.ExpiryDate = expiryDate
	medicine.SupplierID = supplierID
	medicine.Description = description
	medicine.UpdatedAt = time.Now()
	if err := s.medicines.Update(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}
