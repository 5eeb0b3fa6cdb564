package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func openAlerts(alerts []*entity.Alert, productID string) []*entity.Alert {
	var out []*entity.Alert
	for _, a := range alerts {
		if a.ProductID == productID && a.Open() {
			out = append(out, a)
		}
	}
	return out
}

// Total 40 con RP 100 -> crítico, objetivo 150, sugerido 110.
func TestReconcileAlerts_CreaAlertaCritica(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)

	alerts, err := f.reconciler.ReconcileAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1, "el producto sin punto de reorden no genera alerta")

	a := alerts[0]
	assert.Equal(t, testProductID, a.ProductID)
	assert.Equal(t, "SKU-P", a.SKU)
	assert.Equal(t, "Producto P", a.ProductName)
	assert.True(t, a.ReorderPoint.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(40), a.TotalStock)
	assert.Equal(t, entity.CategoryCritical, a.Category)
	assert.Equal(t, int64(110), a.RecommendedQty)
	assert.True(t, a.EstimatedCost.Equal(decimal.RequireFromString("275")), a.EstimatedCost.String())
	assert.Equal(t, "critical: order 110 to reach 150", a.Note)
	assert.Equal(t, entity.AlertStatusNew, a.Status)
	assert.Nil(t, a.Comment)
	assert.Equal(t, f.clock.Now(), a.CreatedAt)
	assert.Equal(t, f.clock.Now(), a.UpdatedAt)
}

// Dos pasadas sin cambios producen exactamente el mismo estado (sin tocar timestamps).
func TestReconcileAlerts_Idempotente(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	first, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	second, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Un traslado no cambia el total: la alerta queda igual.
func TestReconcileAlerts_TrasladoNoCambiaTotal(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	first, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.transfers.SubmitTransfer(ctx, transferInput(testW1, testW2, 20))
	require.NoError(t, err)

	second, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Cambio de stock: se refresca en sitio y el estado del flujo no se toca.
func TestReconcileAlerts_RefrescaSinAvanzarFlujo(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	alerts, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	id := alerts[0].ID
	_, err = f.workflow.SetAlertStatus(ctx, id, "ACKNOWLEDGED", nil)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	f.setStock(t, testProductID, testW1, 50) // total 60 -> low

	alerts, err = f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, id, a.ID)
	assert.Equal(t, entity.AlertStatusAcknowledged, a.Status)
	assert.Equal(t, entity.CategoryLow, a.Category)
	assert.Equal(t, int64(60), a.TotalStock)
	assert.Equal(t, int64(40), a.RecommendedQty)
	assert.Equal(t, f.clock.Now(), a.UpdatedAt)
	assert.NotEqual(t, a.CreatedAt, a.UpdatedAt)
}

// Stock adecuado resuelve; una pasada posterior no vuelve a tocar la alerta resuelta.
func TestReconcileAlerts_ResuelveYNoReabre(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	_, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	f.setStock(t, testProductID, testW1, 140) // total 150 -> adequate
	alerts, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	resolved := alerts[0]
	assert.Equal(t, entity.AlertStatusResolved, resolved.Status)
	assert.Equal(t, f.clock.Now(), resolved.UpdatedAt)

	f.clock.Advance(time.Hour)
	again, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	assert.Equal(t, alerts, again)
}

// Tras resolverse, una nueva caída crea una alerta distinta.
func TestReconcileAlerts_NuevaCaidaCreaOtraAlerta(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	first, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	f.setStock(t, testProductID, testW1, 300) // overstocked
	_, err = f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)

	f.clock.Advance(time.Hour)
	f.setStock(t, testProductID, testW1, 0) // total 10 -> critical
	alerts, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	open := openAlerts(alerts, testProductID)
	require.Len(t, open, 1)
	assert.NotEqual(t, first[0].ID, open[0].ID)
	assert.Equal(t, entity.AlertStatusNew, open[0].Status)
	assert.Equal(t, int64(140), open[0].RecommendedQty)
	assert.Equal(t, open[0].ID, alerts[0].ID, "más reciente primero")
}

// Una alerta resuelta a mano con stock todavía bajo: la pasada siguiente abre otra.
func TestReconcileAlerts_ResueltaManualmenteConStockBajo(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	first, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	_, err = f.workflow.SetAlertStatus(ctx, first[0].ID, "RESOLVED", nil)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	alerts, err := f.reconciler.ReconcileAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Len(t, openAlerts(alerts, testProductID), 1)
}

// Pasadas concurrentes nunca dejan dos alertas abiertas para un producto.
func TestReconcileAlerts_Concurrente(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.reconciler.ReconcileAlerts(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	alerts, err := f.workflow.ListAlerts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
}

// gatedRunner retiene cada Run hasta que el test lo libera; respeta el contexto recibido.
type gatedRunner struct {
	inner   appinventory.TxRunner
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRunner) Run(ctx context.Context, fn func(appinventory.TxRepos) error) error {
	g.entered <- struct{}{}
	<-g.release
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.inner.Run(ctx, fn)
}

// Cancelar a quien inició la pasada no hace fallar a quienes la comparten.
func TestReconcileAlerts_CancelacionNoAfectaAOtros(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	gate := &gatedRunner{inner: f.store, entered: make(chan struct{}, 1), release: make(chan struct{})}
	rec := appinventory.NewAlertReconciler(gate, logger.Nop())

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := rec.ReconcileAlerts(leaderCtx)
		leaderErr <- err
	}()
	<-gate.entered

	type result struct {
		alerts []*entity.Alert
		err    error
	}
	follower := make(chan result, 1)
	go func() {
		alerts, err := rec.ReconcileAlerts(context.Background())
		follower <- result{alerts, err}
	}()

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(gate.release)
	select {
	case res := <-follower:
		require.NoError(t, res.err)
		assert.Len(t, openAlerts(res.alerts, testProductID), 1)
	case <-time.After(5 * time.Second):
		t.Fatal("la pasada compartida no terminó")
	}
}
