package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
)

// Medicine representa un medicamento del catálogo de la farmacia.
// Stock y Threshold son enteros (unidades físicas); Price usa decimal para dinero.
// El stock nunca se muta asignando el campo directamente: todas las mutaciones
// pasan por el Stock Ledger (internal/application/inventory) para garantizar que
// nunca quede negativo.
type Medicine struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Threshold   int // punto de reorden: stock <= threshold dispara alerta
	ExpiryDate  time.Time
	SupplierID  string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMedicine construye un medicamento con ID asignado por la fábrica (UUID).
func NewMedicine(name, category string, stock int, price decimal.Decimal, expiryDate time.Time, supplierID string, threshold int) (*Medicine, error) {
	if name == "" || stock < 0 || threshold < 0 || price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	return &Medicine{
		ID:         uuid.New().String(),
		Name:       name,
		Category:   category,
		Price:      price,
		Stock:      stock,
		Threshold:  threshold,
		ExpiryDate: expiryDate,
		SupplierID: supplierID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Predicados derivados: nunca se persisten como flags independientes.

// IsOutOfStock indica stock agotado.
func (m *Medicine) IsOutOfStock() bool {
	return m.Stock == 0
}

// IsLowStock indica que el stock está en o por debajo del punto de reorden.
func (m *Medicine) IsLowStock() bool {
	return m.Stock <= m.Threshold
}

// IsExpired indica si el medicamento ya venció respecto al instante dado.
func (m *Medicine) IsExpired(now time.Time) bool {
	return m.ExpiryDate.Before(now)
}

// IsExpiringSoon indica si vence dentro de los próximos days días.
func (m *Medicine) IsExpiringSoon(now time.Time, days int) bool {
	return m.ExpiryDate.Before(now.AddDate(0, 0, days))
}
