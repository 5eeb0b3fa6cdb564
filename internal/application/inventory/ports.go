package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Stock      repository.StockRepository
	Transfers  repository.TransferRepository
	Alerts     repository.AlertRepository
	Locks      repository.LockRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado. Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
