package repository

import "context"

// LockRepository candados con alcance de transacción para serializar read-modify-write.
type LockRepository interface {
	// LockProduct serializa los traslados de un mismo producto; productID llega en forma canónica.
	LockProduct(ctx context.Context, productID string) error
	// LockAlerts serializa la reconciliación y los cambios de flujo de alertas.
	LockAlerts(ctx context.Context) error
}
