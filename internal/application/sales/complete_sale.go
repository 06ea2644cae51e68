package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// Resultado de un intento de completar una venta.
const (
	OutcomeCommitted = "COMMITTED"
	OutcomeFailed    = "FAILED"
)

// StockDelta es el descuento de stock aplicado a un medicamento al comprometer
// la venta.
type StockDelta struct {
	MedicineID string
	Quantity   int
}

// CompleteResult es el resultado transitorio del protocolo de completar venta:
// COMMITTED con los deltas finales por línea, o FAILED identificando la primera
// línea cuya reserva falló. En FAILED el stock ya aplicado fue devuelto por
// compensación y la venta sigue PENDING: el caller decide si reintenta, edita
// el carrito o cancela.
type CompleteResult struct {
	Outcome          string
	SaleID           string
	Deltas           []StockDelta
	FailedIndex      int
	FailedMedicineID string
	Reason           string
}

// CompleteSaleService ejecuta el protocolo de completar venta: descontar stock
// por cada línea y finalizar la venta como una sola unidad lógica, aunque los
// primitivos del ledger actúan medicamento por medicamento.
//
// Como la reducción de N líneas no es expresable como un primitivo atómico
// único, el servicio aplica compensaciones: si la reducción falla en la línea
// k, devuelve con Add el stock de las líneas 0..k-1 en orden inverso. Así el
// stock solo queda decrementado para ventas que realmente se completaron.
//
// Un fallo de persistencia durante la compensación es fatal: se reporta como
// domain.ErrInventoryInconsistent (conciliación manual), nunca como un fallo
// ordinario. Nada aquí se reintenta automáticamente.
type CompleteSaleService struct {
	sales  repository.SaleRepository
	ledger StockLedger
	log    *logger.Logger
}

// NewCompleteSaleService construye el orquestador.
func NewCompleteSaleService(sales repository.SaleRepository, ledger StockLedger, log *logger.Logger) *CompleteSaleService {
	return &CompleteSaleService{sales: sales, ledger: ledger, log: log}
}

// CompleteSale compromete el stock de cada línea y finaliza la venta.
//
// Errores: ErrNotFound si la venta no existe; ErrInvalidTransition si no está
// PENDING; ErrEmptySale sin líneas. El stock insuficiente NO es un error del
// método: se devuelve como CompleteResult FAILED (condición recuperable del
// negocio). Solo los fallos de infraestructura viajan como error.
func (s *CompleteSaleService) CompleteSale(ctx context.Context, saleID string) (*CompleteResult, error) {
	sale, err := s.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !sale.IsPending() {
		return nil, domain.ErrInvalidTransition
	}
	if len(sale.Items) == 0 {
		return nil, domain.ErrEmptySale
	}

	// Fase 1: reducir stock línea por línea, en orden.
	for i, item := range sale.Items {
		err := s.ledger.Reduce(ctx, item.MedicineID, item.Quantity)
		if err == nil {
			continue
		}
		// La línea i falló: devolver lo ya aplicado (0..i-1).
		if rbErr := s.compensate(ctx, sale, i); rbErr != nil {
			return nil, rbErr
		}
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().
				Str("sale_id", sale.ID).
				Str("medicine_id", item.MedicineID).
				Int("item_index", i).
				Msg("venta no completada: reserva de stock rechazada")
			return &CompleteResult{
				Outcome:          OutcomeFailed,
				SaleID:           sale.ID,
				FailedIndex:      i,
				FailedMedicineID: item.MedicineID,
				Reason:           err.Error(),
			}, nil
		}
		// Fallo de persistencia en la reducción misma: compensado, se propaga.
		return nil, fmt.Errorf("reducir stock de %s: %w", item.MedicineID, err)
	}

	// Fase 2: todas las reducciones aplicadas; finalizar la venta.
	if err := sale.Complete(); err != nil {
		if rbErr := s.compensate(ctx, sale, len(sale.Items)); rbErr != nil {
			return nil, rbErr
		}
		return nil, err
	}
	if err := s.sales.Update(sale); err != nil {
		// La venta no quedó COMPLETED: devolver todo el stock y dejarla PENDING.
		sale.Status = entity.SaleStatusPending
		if rbErr := s.compensate(ctx, sale, len(sale.Items)); rbErr != nil {
			return nil, rbErr
		}
		return nil, fmt.Errorf("guardar venta completada: %w", err)
	}

	deltas := make([]StockDelta, 0, len(sale.Items))
	for _, item := range sale.Items {
		deltas = append(deltas, StockDelta{MedicineID: item.MedicineID, Quantity: item.Quantity})
	}
	s.log.Info().
		Str("sale_id", sale.ID).
		Str("cashier_id", sale.CashierID).
		Int("items", len(sale.Items)).
		Str("final_amount", sale.FinalAmount.StringFixed(2)).
		Msg("venta completada")
	return &CompleteResult{Outcome: OutcomeCommitted, SaleID: sale.ID, Deltas: deltas}, nil
}

// compensate devuelve el stock de las líneas ya reducidas (índices 0..upto-1)
// en orden inverso. Un fallo aquí deja inventario sin devolver: se reporta
// fuerte con ErrInventoryInconsistent y todos los datos para la conciliación
// manual.
func (s *CompleteSaleService) compensate(ctx context.Context, sale *entity.Sale, upto int) error {
	for i := upto - 1; i >= 0; i-- {
		item := sale.Items[i]
		if err := s.ledger.Add(ctx, item.MedicineID, item.Quantity); err != nil {
			s.log.Error().
				Err(err).
				Str("sale_id", sale.ID).
				Str("medicine_id", item.MedicineID).
				Int("quantity", item.Quantity).
				Int("item_index", i).
				Msg("fallo al compensar stock: inventario posiblemente inconsistente")
			return fmt.Errorf("compensar %d unidades de %s (venta %s): %v: %w",
				item.Quantity, item.MedicineID, sale.ID, err, domain.ErrInventoryInconsistent)
		}
	}
	return nil
}
