// Package storage abre el backend de persistencia elegido por configuración.
package storage

import (
	"context"
	"fmt"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Backend TxRunner más repositorios de lectura fuera de transacción.
type Backend struct {
	TxRunner   appinventory.TxRunner
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Stock      repository.StockRepository
	Transfers  repository.TransferRepository
	Alerts     repository.AlertRepository
	close      func()
}

// Close libera conexiones (no-op para memory/file).
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open según STORE_DRIVER: postgres (con migraciones si DB_AUTO_MIGRATE), file o memory.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Named("migrate")); err != nil {
				return nil, fmt.Errorf("migraciones: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repos := postgres.ReposFor(pool)
		return &Backend{
			TxRunner:   postgres.NewTxRunner(pool),
			Products:   repos.Products,
			Warehouses: repos.Warehouses,
			Stock:      repos.Stock,
			Transfers:  repos.Transfers,
			Alerts:     repos.Alerts,
			close:      pool.Close,
		}, nil
	case config.StoreDriverFile:
		store, err := memory.Open(cfg.Store.FilePath)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", cfg.Store.FilePath, err)
		}
		return fromMemory(store), nil
	case config.StoreDriverMemory:
		return fromMemory(memory.New()), nil
	}
	return nil, fmt.Errorf("STORE_DRIVER inválido: %q", cfg.Store.Driver)
}

func fromMemory(store *memory.Store) *Backend {
	return &Backend{
		TxRunner:   store,
		Products:   store.Products(),
		Warehouses: store.Warehouses(),
		Stock:      store.Stock(),
		Transfers:  store.Transfers(),
		Alerts:     store.Alerts(),
	}
}
