package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/repository"
)

// CartService construye el carrito de una venta PENDING: crear venta, agregar y
// quitar líneas, aplicar descuento, cancelar. Cada línea se valida contra la
// disponibilidad del ledger antes de entrar al agregado; el compromiso real de
// stock no ocurre hasta CompleteSale.
//
// Líneas repetidas del mismo medicamento se fusionan aquí (conveniencia del
// carrito): el agregado mantiene una línea por medicamento y la disponibilidad
// se verifica contra la cantidad acumulada.
type CartService struct {
	sales     repository.SaleRepository
	medicines repository.MedicineRepository
	ledger    StockLedger
}

// NewCartService construye el servicio de carrito.
func NewCartService(sales repository.SaleRepository, medicines repository.MedicineRepository, ledger StockLedger) *CartService {
	return &CartService{sales: sales, medicines: medicines, ledger: ledger}
}

// Create abre una venta PENDING atribuida al cajero.
func (s *CartService) Create(ctx context.Context, customerName, cashierID string) (*entity.Sale, error) {
	if cashierID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale := entity.NewSale(customerName, cashierID)
	if err := s.sales.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Get obtiene una venta por id.
func (s *CartService) Get(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := s.sales.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// AddItem agrega quantity unidades de un medicamento al carrito. Si ya hay una
// línea para el medicamento, fusiona cantidades; la disponibilidad se verifica
// contra el total acumulado de la línea.
func (s *CartService) AddItem(ctx context.Context, saleID, medicineID string, quantity int) (*entity.Sale, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	sale, err := s.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if !sale.IsPending() {
		return nil, domain.ErrInvalidTransition
	}
	medicine, err := s.medicines.GetByID(medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, domain.ErrNotFound
	}

	requested := quantity
	existing, merged := sale.ItemFor(medicineID)
	if merged {
		requested += existing.Quantity
	}
	ok, err := s.ledger.CheckAvailable(ctx, medicineID, requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInsufficientStock
	}

	if merged {
		err = sale.SetItemQuantity(medicineID, requested)
	} else {
		err = sale.AddItem(medicine, quantity)
	}
	if err != nil {
		return nil, err
	}
	if err := s.sales.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// RemoveItem quita todas las líneas de un medicamento del carrito.
func (s *CartService) RemoveItem(ctx context.Context, saleID, medicineID string) (*entity.Sale, error) {
	sale, err := s.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.RemoveItem(medicineID); err != nil {
		return nil, err
	}
	if err := s.sales.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ApplyDiscount fija el descuento de la venta (>= 0).
func (s *CartService) ApplyDiscount(ctx context.Context, saleID string, amount decimal.Decimal) (*entity.Sale, error) {
	sale, err := s.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.ApplyDiscount(amount); err != nil {
		return nil, err
	}
	if err := s.sales.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Cancel transiciona la venta a CANCELLED. Sin efecto sobre stock.
func (s *CartService) Cancel(ctx context.Context, saleID string) (*entity.Sale, error) {
	sale, err := s.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if err := sale.Cancel(); err != nil {
		return nil, err
	}
	if err := s.sales.Update(sale); err != nil {
		return nil, err
	}
	return sale, nil
}
