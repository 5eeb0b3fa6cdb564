package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil, nil si no hay línea registrada para el par.
	Get(ctx context.Context, productID, warehouseID string) (*entity.StockLine, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLine, error)
	Upsert(ctx context.Context, line *entity.StockLine) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockLine, error)
	// TotalsByProduct suma de cantidades por producto en todas las bodegas.
	TotalsByProduct(ctx context.Context) (map[string]int64, error)
}
