package repository

import "github.com/jhoicas/farmacia-pos/internal/domain/entity"

// SaleRepository es el puerto de persistencia para ventas (cabecera + líneas).
// Update reescribe las líneas: el agregado es la unidad de consistencia.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	Update(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List() ([]*entity.Sale, error)
}
