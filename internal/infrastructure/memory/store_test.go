package memory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

const (
	productID = "7b0e6a8e-2f54-4a7c-9a53-0d7f6c1f2a01"
	whA       = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f01"
	whB       = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f02"
)

var ts = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	err := s.Run(ctx, func(r appinventory.TxRepos) error {
		require.NoError(t, r.Products.Upsert(ctx, &entity.Product{
			ID: productID, SKU: "SKU-1", Name: "Tornillo", ReorderPoint: decimal.NewFromInt(100),
		}))
		require.NoError(t, r.Warehouses.Upsert(ctx, &entity.Warehouse{ID: whA, Name: "Norte"}))
		require.NoError(t, r.Warehouses.Upsert(ctx, &entity.Warehouse{ID: whB, Name: "Sur"}))
		return r.Stock.Upsert(ctx, &entity.StockLine{ProductID: productID, WarehouseID: whA, Quantity: 30, UpdatedAt: ts})
	})
	require.NoError(t, err)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := memory.New()
	seed(t, s)

	line, err := s.Stock().Get(context.Background(), productID, whA)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(30), line.Quantity)

	p, err := s.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "SKU-1", p.SKU)
}

// Si fn devuelve error no queda aplicado ningún cambio.
func TestRun_RollbackEnError(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r appinventory.TxRepos) error {
		require.NoError(t, r.Stock.Upsert(ctx, &entity.StockLine{ProductID: productID, WarehouseID: whA, Quantity: 0}))
		seq, err := r.Transfers.NextSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), seq)
		return boom
	})
	require.ErrorIs(t, err, boom)

	line, err := s.Stock().Get(ctx, productID, whA)
	require.NoError(t, err)
	assert.Equal(t, int64(30), line.Quantity)

	// La secuencia reservada en la tx abortada tampoco se publica.
	err = s.Run(ctx, func(r appinventory.TxRepos) error {
		seq, err := r.Transfers.NextSequence(ctx)
		assert.Equal(t, int64(1), seq)
		return err
	})
	require.NoError(t, err)
}

func TestRepos_FueraDeTransaccionSonSoloLectura(t *testing.T) {
	s := memory.New()
	err := s.Stock().Upsert(context.Background(), &entity.StockLine{ProductID: productID, WarehouseID: whA, Quantity: 1})
	assert.Error(t, err)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(appinventory.TxRepos) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTransfers_MasRecientePrimero(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Run(ctx, func(r appinventory.TxRepos) error {
			seq, err := r.Transfers.NextSequence(ctx)
			if err != nil {
				return err
			}
			at := ts.Add(time.Duration(i) * time.Minute)
			return r.Transfers.Create(ctx, &entity.Transfer{
				ID: entity.TransferID(at, seq), Seq: seq, ProductID: productID,
				FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 1,
				Status: entity.TransferStatusCompleted, CreatedAt: at,
			})
		}))
	}

	list, err := s.Transfers().List(ctx, repository.TransferFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "TRF-20261014-000003", list[0].ID)
	assert.Equal(t, "TRF-20261014-000002", list[1].ID)

	list, err = s.Transfers().List(ctx, repository.TransferFilter{Offset: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].Seq)
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia en archivo
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_ArchivoInexistenteArrancaVacio(t *testing.T) {
	s, err := memory.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	list, err := s.Products().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_RecargaColecciones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")
	s, err := memory.Open(path)
	require.NoError(t, err)
	seed(t, s)

	ctx := context.Background()
	require.NoError(t, s.Run(ctx, func(r appinventory.TxRepos) error {
		seq, err := r.Transfers.NextSequence(ctx)
		if err != nil {
			return err
		}
		comment := "pedido a proveedor"
		if err := r.Alerts.Create(ctx, &entity.Alert{
			ID: "5f1d2c3b-0000-4000-8000-000000000001", ProductID: productID, Status: entity.AlertStatusOrdered,
			Category: entity.CategoryCritical, Comment: &comment, CreatedAt: ts, UpdatedAt: ts,
		}); err != nil {
			return err
		}
		return r.Transfers.Create(ctx, &entity.Transfer{
			ID: entity.TransferID(ts, seq), Seq: seq, ProductID: productID,
			FromWarehouseID: whA, ToWarehouseID: whB, Quantity: 5,
			Status: entity.TransferStatusCompleted, CreatedAt: ts,
		})
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"products"`, `"warehouses"`, `"stock"`, `"transfers"`, `"alerts"`} {
		assert.Contains(t, string(raw), key)
	}

	reloaded, err := memory.Open(path)
	require.NoError(t, err)

	line, err := reloaded.Stock().Get(ctx, productID, whA)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.Equal(t, int64(30), line.Quantity)

	transfers, err := reloaded.Transfers().List(ctx, repository.TransferFilter{})
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "TRF-20261014-000001", transfers[0].ID)

	open, err := reloaded.Alerts().ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.NotNil(t, open[0].Comment)
	assert.Equal(t, "pedido a proveedor", *open[0].Comment)

	// La secuencia continúa tras recargar.
	require.NoError(t, reloaded.Run(ctx, func(r appinventory.TxRepos) error {
		seq, err := r.Transfers.NextSequence(ctx)
		assert.Equal(t, int64(2), seq)
		return err
	}))
}

func TestOpen_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{no es json"), 0o600))
	_, err := memory.Open(path)
	assert.Error(t, err)
}
