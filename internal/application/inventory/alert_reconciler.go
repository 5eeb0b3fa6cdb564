package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// AlertReconciler recalcula, para cada producto, la categoría de stock a partir de los totales
// del ledger y crea, refresca o resuelve su alerta abierta. Nunca avanza el flujo manual.
type AlertReconciler struct {
	txRunner TxRunner
	log      *logger.Logger
	now      Clock
	group    singleflight.Group
}

// ReconcileSummary conteo de cambios de una pasada.
type ReconcileSummary struct {
	Created   int
	Refreshed int
	Resolved  int
	Unchanged int
}

// NewAlertReconciler construye el reconciliador.
func NewAlertReconciler(txRunner TxRunner, log *logger.Logger) *AlertReconciler {
	return &AlertReconciler{txRunner: txRunner, log: log, now: systemClock}
}

// WithClock reemplaza la fuente de tiempo.
func (r *AlertReconciler) WithClock(c Clock) *AlertReconciler {
	r.now = c
	return r
}

// ReconcileAlerts hace una pasada completa y devuelve todas las alertas (más reciente primero).
// Es idempotente: sin cambios en el ledger ni en el flujo, una segunda pasada no escribe nada.
// Llamadas concurrentes dentro del proceso comparten una misma pasada; la pasada compartida no
// se cancela con el contexto de quien la inició, y cada llamador deja de esperar con el suyo.
func (r *AlertReconciler) ReconcileAlerts(ctx context.Context) ([]*entity.Alert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pass := context.WithoutCancel(ctx)
	ch := r.group.DoChan("reconcile", func() (any, error) {
		return r.reconcile(pass)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	shared := res.Val.([]*entity.Alert)
	out := make([]*entity.Alert, len(shared))
	for i, a := range shared {
		out[i] = a.Clone()
	}
	return out, nil
}

func (r *AlertReconciler) reconcile(ctx context.Context) ([]*entity.Alert, error) {
	var (
		alerts  []*entity.Alert
		summary ReconcileSummary
	)
	err := r.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Locks.LockAlerts(ctx); err != nil {
			return err
		}
		products, err := repos.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		totals, err := repos.Stock.TotalsByProduct(ctx)
		if err != nil {
			return fmt.Errorf("stock totals: %w", err)
		}
		open, err := repos.Alerts.ListOpen(ctx)
		if err != nil {
			return fmt.Errorf("list open alerts: %w", err)
		}
		openByProduct := make(map[string]*entity.Alert, len(open))
		for _, a := range open {
			openByProduct[a.ProductID] = a
		}

		now := r.now()
		for _, p := range products {
			total := totals[p.ID]
			rec := inventory.Recommend(total, p.ReorderPoint)
			current := openByProduct[p.ID]

			switch {
			case rec.Category.NeedsReorder() && current == nil:
				a := &entity.Alert{
					ID:           uuid.New().String(),
					ProductID:    p.ID,
					SKU:          p.SKU,
					ProductName:  p.Name,
					ReorderPoint: p.ReorderPoint,
					Status:       entity.AlertStatusNew,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				applyRecommendation(a, total, rec, p)
				if err := repos.Alerts.Create(ctx, a); err != nil {
					return fmt.Errorf("create alert: %w", err)
				}
				summary.Created++
			case rec.Category.NeedsReorder():
				if !applyRecommendation(current, total, rec, p) {
					summary.Unchanged++
					continue
				}
				current.UpdatedAt = now
				if err := repos.Alerts.Update(ctx, current); err != nil {
					return fmt.Errorf("refresh alert: %w", err)
				}
				summary.Refreshed++
			case current != nil:
				current.Status = entity.AlertStatusResolved
				current.UpdatedAt = now
				if err := repos.Alerts.Update(ctx, current); err != nil {
					return fmt.Errorf("resolve alert: %w", err)
				}
				summary.Resolved++
			}
		}

		alerts, err = repos.Alerts.List(ctx, repository.AlertFilter{})
		if err != nil {
			return fmt.Errorf("list alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info().
		Int("created", summary.Created).
		Int("refreshed", summary.Refreshed).
		Int("resolved", summary.Resolved).
		Int("unchanged", summary.Unchanged).
		Int("alerts", len(alerts)).
		Msg("reconciliación de alertas")
	return alerts, nil
}

// applyRecommendation copia los campos derivados del ledger; devuelve true si algo cambió.
func applyRecommendation(a *entity.Alert, total int64, rec inventory.Recommendation, p *entity.Product) bool {
	cost := p.UnitCost.Mul(decimal.NewFromInt(rec.Qty))
	if a.TotalStock == total && a.Category == rec.Category && a.RecommendedQty == rec.Qty &&
		a.Note == rec.Note && a.EstimatedCost.Equal(cost) {
		return false
	}
	a.TotalStock = total
	a.Category = rec.Category
	a.RecommendedQty = rec.Qty
	a.Note = rec.Note
	a.EstimatedCost = cost
	return true
}
