package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// StockLedger es la única fuente de verdad para el stock de un medicamento.
// Todo incremento/decremento pasa por aquí, de modo que el invariante
// "el stock nunca es negativo" se aplica en un solo lugar.
//
// El par verificar-entonces-decrementar se delega como un paso atómico al
// puerto de persistencia (MedicineRepository.ReduceStock): un decremento
// condicional serializado por medicamento. Reduce nunca recorta el stock a
// cero: si no alcanza, falla con domain.ErrInsufficientStock y deja el stock
// intacto.
//
// Cada mutación exitosa dispara la reconciliación de alertas del medicamento,
// así la prioridad de alerta nunca queda desactualizada respecto al último
// stock comprometido.
type StockLedger struct {
	medicines repository.MedicineRepository
	alerts    *AlertService
	log       *logger.Logger
}

// NewStockLedger construye el ledger.
func NewStockLedger(medicines repository.MedicineRepository, alerts *AlertService, log *logger.Logger) *StockLedger {
	return &StockLedger{medicines: medicines, alerts: alerts, log: log}
}

// CheckAvailable indica si quantity es > 0 y <= stock actual. Sin efectos.
func (l *StockLedger) CheckAvailable(ctx context.Context, medicineID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	medicine, err := l.medicines.GetByID(medicineID)
	if err != nil {
		return false, err
	}
	if medicine == nil {
		return false, domain.ErrNotFound
	}
	return quantity <= medicine.Stock, nil
}

// Reduce decrementa el stock si y solo si hay disponibilidad en el momento de
// la llamada. Con stock insuficiente falla con domain.ErrInsufficientStock y
// el stock queda sin cambios.
func (l *StockLedger) Reduce(ctx context.Context, medicineID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	newStock, err := l.medicines.ReduceStock(medicineID, quantity)
	if err != nil {
		return err
	}
	l.log.Debug().
		Str("medicine_id", medicineID).
		Int("quantity", quantity).
		Int("stock", newStock).
		Msg("stock reducido")
	return l.reconcile(ctx, medicineID, newStock)
}

// Add incrementa el stock (quantity > 0). Usado para reabastecimiento y para
// la ruta de compensación del orquestador de ventas.
func (l *StockLedger) Add(ctx context.Context, medicineID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	newStock, err := l.medicines.AddStock(medicineID, quantity)
	if err != nil {
		return err
	}
	l.log.Debug().
		Str("medicine_id", medicineID).
		Int("quantity", quantity).
		Int("stock", newStock).
		Msg("stock incrementado")
	return l.reconcile(ctx, medicineID, newStock)
}

// Restock incrementa stock por reabastecimiento de proveedor.
func (l *StockLedger) Restock(ctx context.Context, medicineID string, quantity int) error {
	return l.Add(ctx, medicineID, quantity)
}

// SetAbsolute fija el stock en un valor absoluto (override administrativo).
// Falla con domain.ErrInvalidInput si newStock < 0.
func (l *StockLedger) SetAbsolute(ctx context.Context, medicineID string, newStock int) error {
	if newStock < 0 {
		return domain.ErrInvalidInput
	}
	if err := l.medicines.SetStock(medicineID, newStock); err != nil {
		return err
	}
	return l.reconcile(ctx, medicineID, newStock)
}

// UpdateThreshold cambia el punto de reorden (>= 0) y reconcilia la alerta:
// mover el umbral puede sacar o meter al medicamento en territorio de stock bajo.
func (l *StockLedger) UpdateThreshold(ctx context.Context, medicineID string, threshold int) error {
	if threshold < 0 {
		return domain.ErrInvalidInput
	}
	medicine, err := l.medicines.GetByID(medicineID)
	if err != nil {
		return err
	}
	if medicine == nil {
		return domain.ErrNotFound
	}
	medicine.Threshold = threshold
	if err := l.medicines.Update(medicine); err != nil {
		return err
	}
	return l.alerts.Reconcile(ctx, medicine)
}

// reconcile relee el medicamento con el stock ya comprometido y empuja el
// estado a la reconciliación de alertas.
func (l *StockLedger) reconcile(ctx context.Context, medicineID string, newStock int) error {
	medicine, err := l.medicines.GetByID(medicineID)
	if err != nil {
		return fmt.Errorf("releer medicamento para alertas: %w", err)
	}
	if medicine == nil {
		return domain.ErrNotFound
	}
	medicine.Stock = newStock
	return l.alerts.Reconcile(ctx, medicine)
}
