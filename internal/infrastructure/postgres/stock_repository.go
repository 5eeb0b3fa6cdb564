package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) get(ctx context.Context, query, productID, warehouseID string) (*entity.StockLine, error) {
	var s entity.StockLine
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Get obtiene la línea de stock de un producto en una bodega; nil si no existe.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.StockLine, error) {
	line, err := r.get(ctx, `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_lines WHERE product_id = $1 AND warehouse_id = $2`, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return line, nil
}

// GetForUpdate obtiene la línea y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLine, error) {
	line, err := r.get(ctx, `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_lines WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return line, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, line *entity.StockLine) error {
	query := `
		INSERT INTO stock_lines (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	updatedAt := line.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = nowUTC()
	}
	_, err := r.q.Exec(ctx, query, line.ProductID, line.WarehouseID, line.Quantity, updatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByProduct líneas de un producto en todas sus bodegas.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_lines WHERE product_id = $1 ORDER BY warehouse_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		var s entity.StockLine
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalsByProduct suma de cantidades por producto.
func (r *StockRepo) TotalsByProduct(ctx context.Context) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, SUM(quantity)::BIGINT FROM stock_lines GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("stock totals: %w", err)
	}
	defer rows.Close()
	totals := make(map[string]int64)
	for rows.Next() {
		var id string
		var total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scan stock total: %w", err)
		}
		totals[id] = total
	}
	return totals, rows.Err()
}
