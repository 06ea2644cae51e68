package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/domain"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

func TestAlertService_SweepReconciliaTodoElCatalogo(t *testing.T) {
	f := newLedgerFixture(t)
	low := f.seed(t, "Ibuprofeno 400mg", 2, 10)
	ok := f.seed(t, "Paracetamol 500mg", 50, 10)
	ctx := context.Background()

	require.NoError(t, f.alertSvc.Sweep(ctx))

	open, err := f.alerts.GetOpenByMedicine(low.ID)
	require.NoError(t, err)
	assert.NotNil(t, open, "el barrido debe abrir alerta para el medicamento bajo")

	open, err = f.alerts.GetOpenByMedicine(ok.ID)
	require.NoError(t, err)
	assert.Nil(t, open, "el medicamento sano no genera alerta")

	// Un segundo barrido sin cambios de stock no duplica alertas.
	require.NoError(t, f.alertSvc.Sweep(ctx))
	active, err := f.alertSvc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestAlertService_DismissRequiereUsuario(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Loratadina 10mg", 2, 10)
	ctx := context.Background()
	require.NoError(t, f.alertSvc.Sweep(ctx))

	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, open)

	assert.ErrorIs(t, f.alertSvc.Dismiss(ctx, open.ID, ""), domain.ErrInvalidInput,
		"descartar exige la identidad de quien descarta")

	require.NoError(t, f.alertSvc.Dismiss(ctx, open.ID, "cajero-1"))
	stored, err := f.alerts.GetByID(open.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusDismissed, stored.Status)
	assert.Equal(t, "cajero-1", stored.DismissedBy)

	// Descartada no aparece en activas, pero sigue abierta para reconciliación.
	active, err := f.alertSvc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	stillOpen, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NotNil(t, stillOpen, "DISMISSED sigue siendo una alerta abierta")
}

func TestAlertService_DismissedSeResuelveAlRecuperarStock(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Omeprazol 20mg", 2, 10)
	ctx := context.Background()
	require.NoError(t, f.alertSvc.Sweep(ctx))

	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)
	require.NoError(t, f.alertSvc.Dismiss(ctx, open.ID, "cajero-1"))

	// Reabastecer sobre el umbral resuelve incluso la alerta descartada.
	require.NoError(t, f.ledger.Add(ctx, m.ID, 100))
	stored, err := f.alerts.GetByID(open.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusResolved, stored.Status)
}

func TestAlertService_ReactivateSoloDesdeDismissed(t *testing.T) {
	f := newLedgerFixture(t)
	m := f.seed(t, "Amoxicilina 500mg", 2, 10)
	ctx := context.Background()
	require.NoError(t, f.alertSvc.Sweep(ctx))

	open, err := f.alerts.GetOpenByMedicine(m.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.alertSvc.Reactivate(ctx, open.ID), domain.ErrInvalidTransition,
		"reactivar una alerta activa no es válido")

	require.NoError(t, f.alertSvc.Dismiss(ctx, open.ID, "cajero-1"))
	require.NoError(t, f.alertSvc.Reactivate(ctx, open.ID))

	stored, err := f.alerts.GetByID(open.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AlertStatusActive, stored.Status)
	assert.Empty(t, stored.DismissedBy)
}

func TestAlertService_DismissInexistente(t *testing.T) {
	f := newLedgerFixture(t)
	err := f.alertSvc.Dismiss(context.Background(), "no-existe", "cajero-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
