package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
)

// Estados de una venta (máquina de estados finita).
// PENDING es el estado inicial; COMPLETED, CANCELLED y REFUNDED son terminales.
// REFUNDED solo es alcanzable por un flujo de devoluciones externo a este núcleo.
const (
	SaleStatusPending   = "PENDING"
	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"
	SaleStatusRefunded  = "REFUNDED"
)

// SaleItem es una línea de venta. Nombre y precio se desnormalizan al momento de
// agregar la línea: el recibo debe reflejar el precio pagado aunque el catálogo
// cambie después.
type SaleItem struct {
	MedicineID   string
	MedicineName string
	UnitPrice    decimal.Decimal
	Quantity     int
	Subtotal     decimal.Decimal
}

// Sale es el agregado de una venta: líneas, totales, descuento y estado.
// Toda mutación de líneas/descuento recalcula los totales de inmediato, de modo
// que nunca se observa un total desactualizado. Las mutaciones solo se permiten
// mientras el estado es PENDING.
//
// Completar una venta NO toca el stock: el compromiso de inventario es
// responsabilidad del orquestador (internal/application/sales), lo que mantiene
// al agregado libre de efectos cruzados entre entidades.
type Sale struct {
	ID           string
	CustomerName string
	CashierID    string
	Date         time.Time
	Items        []SaleItem
	Discount     decimal.Decimal
	TotalAmount  decimal.Decimal
	FinalAmount  decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSale construye una venta PENDING con ID asignado por la fábrica (UUID).
// CashierID es la identidad opaca del cajero (colaborador de identidad).
func NewSale(customerName, cashierID string) *Sale {
	now := time.Now()
	return &Sale{
		ID:           uuid.New().String(),
		CustomerName: customerName,
		CashierID:    cashierID,
		Date:         now,
		Items:        []SaleItem{},
		Discount:     decimal.Zero,
		TotalAmount:  decimal.Zero,
		FinalAmount:  decimal.Zero,
		Status:       SaleStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsPending indica si la venta aún admite mutaciones.
func (s *Sale) IsPending() bool {
	return s.Status == SaleStatusPending
}

// ItemFor devuelve la línea para un medicamento, si existe.
func (s *Sale) ItemFor(medicineID string) (*SaleItem, bool) {
	for i := range s.Items {
		if s.Items[i].MedicineID == medicineID {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// AddItem agrega una línea desnormalizando nombre y precio del medicamento.
// El agregado siempre agrega una línea nueva; fusionar líneas del mismo
// medicamento es una conveniencia del caso de uso de carrito, no del agregado.
func (s *Sale) AddItem(medicine *Medicine, quantity int) error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	if medicine == nil || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	item := SaleItem{
		MedicineID:   medicine.ID,
		MedicineName: medicine.Name,
		UnitPrice:    medicine.Price,
		Quantity:     quantity,
		Subtotal:     medicine.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	s.Items = append(s.Items, item)
	s.recalculate()
	return nil
}

// SetItemQuantity fija la cantidad de una línea existente y recalcula subtotal
// y totales. Usado por el carrito para fusionar líneas del mismo medicamento.
func (s *Sale) SetItemQuantity(medicineID string, quantity int) error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	item, ok := s.ItemFor(medicineID)
	if !ok {
		return domain.ErrNotFound
	}
	item.Quantity = quantity
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	s.recalculate()
	return nil
}

// RemoveItem elimina todas las líneas de un medicamento y recalcula totales.
func (s *Sale) RemoveItem(medicineID string) error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.MedicineID != medicineID {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	s.recalculate()
	return nil
}

// ApplyDiscount fija el descuento (>= 0) y recalcula el monto final.
func (s *Sale) ApplyDiscount(amount decimal.Decimal) error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	if amount.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	s.Discount = amount
	s.recalculate()
	return nil
}

// Complete transiciona PENDING -> COMPLETED. Exige al menos una línea.
// No toca el Stock Ledger: eso es trabajo del orquestador.
func (s *Sale) Complete() error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	if len(s.Items) == 0 {
		return domain.ErrEmptySale
	}
	s.Status = SaleStatusCompleted
	s.UpdatedAt = time.Now()
	return nil
}

// Cancel transiciona PENDING -> CANCELLED. Sin efecto sobre stock: las líneas
// nunca fueron comprometidas.
func (s *Sale) Cancel() error {
	if !s.IsPending() {
		return domain.ErrInvalidTransition
	}
	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// recalculate recomputa TotalAmount y FinalAmount = max(0, total - descuento).
func (s *Sale) recalculate() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal)
	}
	s.TotalAmount = total
	final := total.Sub(s.Discount)
	if final.LessThan(decimal.Zero) {
		final = decimal.Zero
	}
	s.FinalAmount = final
	s.UpdatedAt = time.Now()
}
