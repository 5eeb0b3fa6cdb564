package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID = "7b0e6a8e-2f54-4a7c-9a53-0d7f6c1f2a01"
	testOtherID   = "7b0e6a8e-2f54-4a7c-9a53-0d7f6c1f2a02"
	testW1        = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f01"
	testW2        = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f02"
	testW3        = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f03"
	testMissingID = "00000000-0000-4000-8000-00000000dead"
)

// fakeClock reloj controlable: avanza solo cuando el test lo pide.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	store      *memory.Store
	clock      *fakeClock
	transfers  *appinventory.TransferUseCase
	reconciler *appinventory.AlertReconciler
	workflow   *appinventory.AlertWorkflowUseCase
}

// newFixture producto P (RP=100, costo 2.50) con líneas {W1:30, W2:10}; W3 sin líneas;
// producto O (RP=0) con {W1:5}.
func newFixture(t *testing.T, policy appinventory.WorkflowPolicy) *fixture {
	t.Helper()
	store := memory.New()
	clock := newFakeClock()
	ctx := context.Background()

	err := store.Run(ctx, func(r appinventory.TxRepos) error {
		for _, p := range []*entity.Product{
			{ID: testProductID, SKU: "SKU-P", Name: "Producto P", Category: "ferretería",
				ReorderPoint: decimal.NewFromInt(100), UnitCost: decimal.RequireFromString("2.50")},
			{ID: testOtherID, SKU: "SKU-O", Name: "Producto O"},
		} {
			if err := r.Products.Upsert(ctx, p); err != nil {
				return err
			}
		}
		for _, w := range []*entity.Warehouse{{ID: testW1, Name: "W1"}, {ID: testW2, Name: "W2"}, {ID: testW3, Name: "W3"}} {
			if err := r.Warehouses.Upsert(ctx, w); err != nil {
				return err
			}
		}
		for _, l := range []*entity.StockLine{
			{ProductID: testProductID, WarehouseID: testW1, Quantity: 30},
			{ProductID: testProductID, WarehouseID: testW2, Quantity: 10},
			{ProductID: testOtherID, WarehouseID: testW1, Quantity: 5},
		} {
			if err := r.Stock.Upsert(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	log := logger.Nop()
	return &fixture{
		store: store,
		clock: clock,
		transfers: appinventory.NewTransferUseCase(store, store.Products(), store.Warehouses(), store.Transfers(), log).
			WithClock(clock.Now),
		reconciler: appinventory.NewAlertReconciler(store, log).WithClock(clock.Now),
		workflow:   appinventory.NewAlertWorkflowUseCase(store, store.Alerts(), policy, log).WithClock(clock.Now),
	}
}

func (f *fixture) qty(t *testing.T, productID, warehouseID string) (int64, bool) {
	t.Helper()
	line, err := f.store.Stock().Get(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	if line == nil {
		return 0, false
	}
	return line.Quantity, true
}

// setStock ajusta una línea directamente (simula entradas/salidas fuera del núcleo).
func (f *fixture) setStock(t *testing.T, productID, warehouseID string, qty int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Run(ctx, func(r appinventory.TxRepos) error {
		return r.Stock.Upsert(ctx, &entity.StockLine{ProductID: productID, WarehouseID: warehouseID, Quantity: qty})
	}))
}

func transferInput(from, to string, qty int64) appinventory.TransferInput {
	return appinventory.TransferInput{
		ProductID:       testProductID,
		FromWarehouseID: from,
		ToWarehouseID:   to,
		Quantity:        decimal.NewFromInt(qty),
	}
}

func quantityInput(qty string) appinventory.TransferInput {
	in := transferInput(testW1, testW2, 0)
	in.Quantity = decimal.RequireFromString(qty)
	return in
}
