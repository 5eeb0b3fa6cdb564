package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AlertFilter filtros de listado de alertas. Status vacío = todas.
type AlertFilter struct {
	Status entity.AlertStatus
}

// AlertRepository define el puerto de persistencia para alertas de reposición.
type AlertRepository interface {
	// GetByID devuelve nil, nil si la alerta no existe.
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Alert, error)
	// ListOpen alertas con estado distinto de RESOLVED.
	ListOpen(ctx context.Context) ([]*entity.Alert, error)
	// List devuelve alertas de la más reciente a la más antigua.
	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, error)
	Create(ctx context.Context, alert *entity.Alert) error
	Update(ctx context.Context, alert *entity.Alert) error
}
