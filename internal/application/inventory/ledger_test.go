package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/alert"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/infrastructure/memory"
	"github.com/jhoicas/farmacia-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	medicines *memory.MedicineRepo
	alerts    *memory.AlertRepo
	ledger    *inventory.StockLedger
	alertSvc  *inventory.AlertService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	medicines := memory.NewMedicineRepository(store)
	alerts := memory.NewAlertRepository(store)
	alertSvc := inventory.NewAlertService(alerts, medicines, logger.Nop())
	return &ledgerFixture{
		medicines: medicines,
		alerts:    alerts,
		alertSvc:  alertSvc,
		ledger:    inventory.NewStockLedger(medicines, alertSvc, logger.Nop()),
	}
}

func (f *ledgerFixture) seed(t *testing.T, name string, stock, threshold int) *entity.Medicine {
	t.Helper()
	m, err := entity.NewMedicine(name, "analgésicos", stock,
		decimal.RequireFromString("5.00"), time.Now().AddDate(1, 0, 0), "prov-1", threshold)
	require.NoError(t, err)
	require.NoError(t, f.medicines.Create(m))
	return m
}

func (f *ledgerFixture) stockOf(t *testing.T, id string) int {
	t.Helper()
	m, err := f.medicines.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Reduce / Add / SetAbsolute
// ──────────────────────────────────────────────────────────────────────────────

func TestStockLedger_ReduceDescuentaYRespetaElPiso(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Ibuprofeno 400mg", 10, 3)
	ctx := context.Background()

	require.NoError(t, f.ledger.Reduce(ctx, m.ID, 4))
	assert.Equal(t, 6, f.stockOf(t, m.ID))

	// Pedir más de lo disponible falla completo: nunca recorta a cero.
	err := f.ledger.Reduce(ctx, m.ID, 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 6, f.stockOf(t, m.ID), "un rechazo deja el stock intacto")

	// Reducir exactamente al stock disponible sí procede.
	require.NoError(t, f.ledger.Reduce(ctx, m.ID, 6))
	assert.Equal(t, 0, f.stockOf(t, m.ID))
}

func TestStockLedger_CantidadesNoPositivasRechazadas(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Paracetamol 500mg", 10, 3)
	ctx := context.Background()

	assert.ErrorIs(t, f.ledger.Reduce(ctx, m.ID, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.ledger.Reduce(ctx, m.ID, -5), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.ledger.Add(ctx, m.ID, 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.ledger.SetAbsolute(ctx, m.ID, -1), domain.ErrInvalidInput)
	assert.Equal(t, 10, f.stockOf(t, m.ID))
}

func TestStockLedger_MedicamentoInexistente(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ledger.Reduce(ctx, "no-existe", 1), domain.ErrNotFound)
	assert.ErrorIs(t, f.ledger.Add(ctx, "no-existe", 1), domain.ErrNotFound)

	_, err := f.ledger.CheckAvailable(ctx, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockLedger_CheckAvailableSinEfectos(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Omeprazol 20mg", 5, 2)
	ctx := context.Background()

	ok, err := f.ledger.CheckAvailable(ctx, m.ID, 5)
	require.NoError(t, err)
	assert.True(t, ok, "la cantidad exacta disponible es válida")

	ok, err = f.ledger.CheckAvailable(ctx, m.ID, 6)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.ledger.CheckAvailable(ctx, m.ID, 0)
	require.NoError(t, err)
	assert.False(t, ok, "cantidad cero no es una consulta válida")

	assert.Equal(t, 5, f.stockOf(t, m.ID), "CheckAvailable nunca muta stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Serialización de decrementos concurrentes
// ──────────────────────────────────────────────────────────────────────────────

func TestStockLedger_DecrementosConcurrentesNuncaSobrevenden(t *testing.T) {
	// 40 goroutines compiten por 25 unidades pidiendo 1 cada una: exactamente
	// 25 deben ganar y el resto recibir ErrInsufficientStock.
	f := newLedgerFixture(t)
	m := f.seed(t, "Amoxicilina 500mg", 25, 0)
	ctx := context.Background()

	const workers = 40
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- f.ledger.Reduce(ctx, m.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			losses++
		}
	}
	assert.Equal(t, 25, wins, "deben ganar exactamente tantas como unidades había")
	assert.Equal(t, 15, losses)
	assert.Equal(t, 0, f.stockOf(t, m.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación de alertas empujada por el ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestStockLedger_ReduceCreaYResuelveAlertas(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Loratadina 10mg", 12, 10)
	ctx := context.Background()

	// 12 -> 9: cruza el umbral, debe existir una alerta ACTIVE.
	require.NoError(t, f.ledger.Reduce(ctx, m.ID, 3))
	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, open, "cruzar el umbral debe crear una alerta")
	assert.Equal(t, entity.AlertStatusActive, open.Status)
	assert.Equal(t, 9, open.CurrentStock)

	// 9 -> 2: la misma alerta se refresca y sube de prioridad.
	require.NoError(t, f.ledger.Reduce(ctx, m.ID, 7))
	refreshed, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, refreshed)
	assert.Equal(t, open.ID, refreshed.ID, "no se crea una alerta nueva mientras hay una abierta")
	assert.Equal(t, alert.PriorityHigh, refreshed.Priority)

	// Reabastecer sobre el umbral resuelve la alerta automáticamente.
	require.NoError(t, f.ledger.Add(ctx, m.ID, 20))
	open, err = f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	assert.Nil(t, open, "con stock recuperado no debe quedar alerta abierta")

	resolved, err := f.alerts.GetByID(refreshed.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, entity.AlertStatusResolved, resolved.Status)
}

func TestStockLedger_UpdateThresholdReconcilia(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Vitamina C", 8, 5)
	ctx := context.Background()

	// Subir el umbral por encima del stock mete al medicamento en stock bajo.
	require.NoError(t, f.ledger.UpdateThreshold(ctx, m.ID, 10))
	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, open, "mover el umbral sobre el stock dispara alerta")

	// Bajarlo de nuevo la resuelve.
	require.NoError(t, f.ledger.UpdateThreshold(ctx, m.ID, 5))
	open, err = f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestStockLedger_SetAbsolutePermiteCeroYReconcilia(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Insulina", 50, 10)
	ctx := context.Background()

	require.NoError(t, f.ledger.SetAbsolute(ctx, m.ID, 0))
	assert.Equal(t, 0, f.stockOf(t, m.ID))

	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, alert.PriorityHigh, open.Priority, "stock cero es prioridad HIGH")
}
