package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LockRepository = (*LockRepo)(nil)

// Espacios de claves para pg_advisory_xact_lock(int4, int4).
const (
	lockSpaceProduct int32 = 1
	lockSpaceAlerts  int32 = 2
)

// LockRepo candados consultivos de PostgreSQL liberados al terminar la transacción.
// Solo tienen efecto dentro de una tx; con el pool se liberan al instante.
type LockRepo struct {
	q Querier
}

// NewLockRepository construye el adaptador.
func NewLockRepository(q Querier) *LockRepo {
	return &LockRepo{q: q}
}

// LockProduct serializa los traslados del producto. La clave sale del uuid ya normalizado
// por PostgreSQL, así que cualquier grafía del id toma el mismo candado.
func (r *LockRepo) LockProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2::uuid::text))`, lockSpaceProduct, productID); err != nil {
		return fmt.Errorf("lock product: %w", err)
	}
	return nil
}

// LockAlerts serializa reconciliación y cambios de flujo.
func (r *LockRepo) LockAlerts(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, 0)`, lockSpaceAlerts); err != nil {
		return fmt.Errorf("lock alerts: %w", err)
	}
	return nil
}
