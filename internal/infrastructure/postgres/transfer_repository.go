package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo log de traslados sobre PostgreSQL. Un trigger impide UPDATE/DELETE.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// NextSequence toma el siguiente valor de transfer_seq.
func (r *TransferRepo) NextSequence(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.q.QueryRow(ctx, `SELECT nextval('transfer_seq')`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next transfer seq: %w", err)
	}
	return seq, nil
}

// Create agrega un traslado al log.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, seq, product_id, from_warehouse_id, to_warehouse_id, quantity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Seq, t.ProductID, t.FromWarehouseID, t.ToWarehouseID, t.Quantity, t.Status, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// List traslados del más reciente al más antiguo.
func (r *TransferRepo) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	query := `
		SELECT id, seq, product_id, from_warehouse_id, to_warehouse_id, quantity, status, created_at
		FROM transfers`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" WHERE product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	query += " ORDER BY created_at DESC, seq DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, filter.Limit)
		pos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", pos)
		args = append(args, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Transfer{}
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.Seq, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.Quantity, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
