package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testCashierID = "00000000-0000-0000-0000-0000000000ca"

type salesFixture struct {
	medicines *memory.MedicineRepo
	saleRepo  *memory.SaleRepo
	ledger    *inventory.StockLedger
	cart      *sales.CartService
	complete  *sales.CompleteSaleService
	queries   *sales.SalesQueryService
}

func newSalesFixture(t *testing.T) *salesFixture {
	t.Helper()
	store := memory.NewStore()
	medicines := memory.NewMedicineRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	alerts := memory.NewAlertRepository(store)
	alertSvc := inventory.NewAlertService(alerts, medicines, logger.Nop())
	ledger := inventory.NewStockLedger(medicines, alertSvc, logger.Nop())
	return &salesFixture{
		medicines: medicines,
		saleRepo:  saleRepo,
		ledger:    ledger,
		cart:      sales.NewCartService(saleRepo, medicines, ledger),
		complete:  sales.NewCompleteSaleService(saleRepo, ledger, logger.Nop()),
		queries:   sales.NewSalesQueryService(saleRepo),
	}
}

func (f *salesFixture) seed(t *testing.T, name, price string, stock int) *entity.Medicine {
	t.Helper()
	m, err := entity.NewMedicine(name, "analgésicos", stock,
		decimal.RequireFromString(price), time.Now().AddDate(1, 0, 0), "prov-1", 5)
	require.NoError(t, err)
	require.NoError(t, f.medicines.Create(m))
	return m
}

func (f *salesFixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	m, err := f.medicines.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestCartService_CreateExigeCajero(t *testing.T) {
	f := newSalesFixture(t)
	ctx := context.Background()

	_, err := f.cart.Create(ctx, "Ana Gómez", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sale, err := f.cart.Create(ctx, "Ana Gómez", testCashierID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Equal(t, testCashierID, sale.CashierID)

	stored, err := f.cart.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, stored.ID)
}

func TestCartService_AddItemNoTocaStock(t *testing.T) {
	f := newSalesFixture(t)
	m := f.seed(t, "Ibuprofeno 400mg", "12.50", 10)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 10, f.stockOf(t, m.ID),
		"agregar al carrito nunca compromete stock")
}

func TestCartService_AddItemFusionaLineasDelMismoMedicamento(t *testing.T) {
	f := newSalesFixture(t)
	m := f.seed(t, "Ibuprofeno 400mg", "12.50", 10)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 4)
	require.NoError(t, err)
	updated, err := f.cart.AddItem(ctx, sale.ID, m.ID, 3)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1, "el mismo medicamento se fusiona en una línea")
	assert.Equal(t, 7, updated.Items[0].Quantity)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("87.50")))

	// La disponibilidad se valida contra el total acumulado: 7 + 4 > 10.
	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La línea no cambió tras el rechazo.
	stored, err := f.cart.Get(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Items[0].Quantity)
}

func TestCartService_AddItemValidaciones(t *testing.T) {
	f := newSalesFixture(t)
	m := f.seed(t, "Paracetamol 500mg", "10.00", 3)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.cart.AddItem(ctx, sale.ID, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.cart.AddItem(ctx, "no-existe", m.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"pedir sobre el stock disponible se rechaza ya en el carrito")
}

func TestCartService_AddItemSobreVentaCancelada(t *testing.T) {
	f := newSalesFixture(t)
	m := f.seed(t, "Loratadina 10mg", "4.00", 10)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)
	_, err = f.cart.Cancel(ctx, sale.ID)
	require.NoError(t, err)

	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCartService_RemoveItemYDescuentoPersisten(t *testing.T) {
	f := newSalesFixture(t)
	a := f.seed(t, "Amoxicilina 500mg", "8.00", 20)
	b := f.seed(t, "Omeprazol 20mg", "6.00", 20)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, sale.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, sale.ID, b.ID, 1)
	require.NoError(t, err)

	_, err = f.cart.RemoveItem(ctx, sale.ID, a.ID)
	require.NoError(t, err)
	_, err = f.cart.ApplyDiscount(ctx, sale.ID, decimal.RequireFromString("1.00"))
	require.NoError(t, err)

	stored, err := f.cart.Get(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, b.ID, stored.Items[0].MedicineID)
	assert.True(t, stored.FinalAmount.Equal(decimal.RequireFromString("5.00")),
		"6.00 - 1.00 de descuento")
}

func TestCartService_CancelNoTocaStock(t *testing.T) {
	f := newSalesFixture(t)
	m := f.seed(t, "Vitamina C", "2.00", 10)
	ctx := context.Background()

	sale, err := f.cart.Create(ctx, "", testCashierID)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, sale.ID, m.ID, 5)
	require.NoError(t, err)

	cancelled, err := f.cart.Cancel(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, cancelled.Status)
	assert.Equal(t, 10, f.stockOf(t, m.ID),
		"cancelar una venta PENDING no devuelve nada porque nada se comprometió")
}
