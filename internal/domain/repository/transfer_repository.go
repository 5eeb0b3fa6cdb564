package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// TransferFilter filtros del log de traslados. ProductID vacío = todos.
type TransferFilter struct {
	ProductID string
	Limit     int
	Offset    int
}

// TransferRepository log append-only de traslados: no hay Update ni Delete.
type TransferRepository interface {
	// NextSequence reserva el siguiente número de la secuencia monotónica del log.
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, transfer *entity.Transfer) error
	// List devuelve los traslados del más reciente al más antiguo.
	List(ctx context.Context, filter TransferFilter) ([]*entity.Transfer, error)
}
