package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas de reposición sobre PostgreSQL.
// El índice único parcial alerts_one_open_per_product garantiza una sola alerta abierta por producto.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, product_id, sku, product_name, reorder_point, total_stock, category,
	recommended_qty, estimated_cost, note, status, comment, created_at, updated_at`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var category, status string
	err := row.Scan(&a.ID, &a.ProductID, &a.SKU, &a.ProductName, &a.ReorderPoint, &a.TotalStock, &category,
		&a.RecommendedQty, &a.EstimatedCost, &a.Note, &status, &a.Comment, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Category = entity.StockCategory(category)
	a.Status = entity.AlertStatus(status)
	return &a, nil
}

func (r *AlertRepo) getOne(ctx context.Context, query, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// GetByID obtiene una alerta; nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID con la fila bloqueada.
func (r *AlertRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AlertRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListOpen alertas no resueltas.
func (r *AlertRepo) ListOpen(ctx context.Context) ([]*entity.Alert, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts WHERE status <> $1 ORDER BY created_at DESC, id DESC`,
		string(entity.AlertStatusResolved))
}

// List alertas de la más reciente a la más antigua, opcionalmente por estado.
func (r *AlertRepo) List(ctx context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	if filter.Status != "" {
		return r.list(ctx, `SELECT `+alertColumns+` FROM alerts WHERE status = $1 ORDER BY created_at DESC, id DESC`,
			string(filter.Status))
	}
	return r.list(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC, id DESC`)
}

// Create inserta una alerta nueva. Una segunda alerta abierta para el producto es un conflicto.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `
		INSERT INTO alerts (id, product_id, sku, product_name, reorder_point, total_stock, category,
			recommended_qty, estimated_cost, note, status, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProductID, a.SKU, a.ProductName, a.ReorderPoint, a.TotalStock, string(a.Category),
		a.RecommendedQty, a.EstimatedCost, a.Note, string(a.Status), a.Comment, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("el producto %s ya tiene una alerta abierta", a.ProductID)
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Update sobrescribe los campos mutables (derivados del ledger y del flujo).
func (r *AlertRepo) Update(ctx context.Context, a *entity.Alert) error {
	query := `
		UPDATE alerts SET total_stock = $2, category = $3, recommended_qty = $4, estimated_cost = $5,
			note = $6, status = $7, comment = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.TotalStock, string(a.Category), a.RecommendedQty, a.EstimatedCost,
		a.Note, string(a.Status), a.Comment, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflictf("el producto %s ya tiene una alerta abierta", a.ProductID)
		}
		return fmt.Errorf("update alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFoundf("alerta %s no encontrada", a.ID)
	}
	return nil
}
