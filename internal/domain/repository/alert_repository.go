package repository

import "github.com/jhoicas/farmacia-pos/internal/domain/entity"

// AlertRepository es el puerto de persistencia para alertas de stock bajo.
type AlertRepository interface {
	Create(alert *entity.LowStockAlert) error
	Update(alert *entity.LowStockAlert) error
	GetByID(id string) (*entity.LowStockAlert, error)
	// GetOpenByMedicine devuelve la alerta no resuelta (ACTIVE o DISMISSED) del
	// medicamento, o nil si no existe. A lo sumo hay una alerta abierta por
	// medicamento.
	GetOpenByMedicine(medicineID string) (*entity.LowStockAlert, error)
	ListActive() ([]*entity.LowStockAlert, error)
	List() ([]*entity.LowStockAlert, error)
}
