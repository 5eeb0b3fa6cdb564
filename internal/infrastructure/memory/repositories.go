package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.StockRepository     = (*StockRepo)(nil)
	_ repository.TransferRepository  = (*TransferRepo)(nil)
	_ repository.AlertRepository     = (*AlertRepo)(nil)
)

// ProductRepo catálogo de productos en memoria.
type ProductRepo struct{ view view }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.view(func(st *state, _ bool) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.view(func(st *state, _ bool) error {
		out = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}

func (r *ProductRepo) Upsert(_ context.Context, product *entity.Product) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.products[product.ID] = *product
		return nil
	})
}

// WarehouseRepo catálogo de bodegas en memoria.
type WarehouseRepo struct{ view view }

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.view(func(st *state, _ bool) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.view(func(st *state, _ bool) error {
		out = make([]*entity.Warehouse, 0, len(st.warehouses))
		for _, w := range st.warehouses {
			w := w
			out = append(out, &w)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *WarehouseRepo) Upsert(_ context.Context, warehouse *entity.Warehouse) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

// StockRepo líneas de stock sobre el Ledger del estado.
type StockRepo struct{ view view }

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.StockLine, error) {
	var out *entity.StockLine
	err := r.view(func(st *state, _ bool) error {
		if line, ok := st.ledger.Line(productID, warehouseID); ok {
			out = &line
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a Get: Store.Run ya tiene el store en exclusiva.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.StockLine, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *StockRepo) Upsert(_ context.Context, line *entity.StockLine) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.ledger.SetQuantity(line.ProductID, line.WarehouseID, line.Quantity, line.UpdatedAt)
		return nil
	})
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	err := r.view(func(st *state, _ bool) error {
		for _, line := range st.ledger.Lines() {
			if line.ProductID == productID {
				line := line
				out = append(out, &line)
			}
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) TotalsByProduct(_ context.Context) (map[string]int64, error) {
	var out map[string]int64
	err := r.view(func(st *state, _ bool) error {
		out = st.ledger.Totals()
		return nil
	})
	return out, err
}

// TransferRepo log append-only en memoria.
type TransferRepo struct{ view view }

func (r *TransferRepo) NextSequence(_ context.Context) (int64, error) {
	var seq int64
	err := r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.transferSeq++
		seq = st.transferSeq
		return nil
	})
	return seq, err
}

func (r *TransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.transfers = append(st.transfers, *transfer)
		return nil
	})
}

func (r *TransferRepo) List(_ context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	out := []*entity.Transfer{}
	err := r.view(func(st *state, _ bool) error {
		skipped := 0
		for _, t := range newestFirst(st.transfers) {
			if filter.ProductID != "" && t.ProductID != filter.ProductID {
				continue
			}
			if skipped < filter.Offset {
				skipped++
				continue
			}
			if filter.Limit > 0 && len(out) >= filter.Limit {
				break
			}
			t := t
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

// AlertRepo alertas de reposición en memoria.
type AlertRepo struct{ view view }

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	var out *entity.Alert
	err := r.view(func(st *state, _ bool) error {
		if a, ok := st.alerts[id]; ok {
			out = a.Clone()
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	return r.GetByID(ctx, id)
}

func (r *AlertRepo) ListOpen(_ context.Context) ([]*entity.Alert, error) {
	var out []*entity.Alert
	err := r.view(func(st *state, _ bool) error {
		for _, a := range sortedAlerts(st.alerts) {
			if a.Open() {
				out = append(out, a.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) List(_ context.Context, filter repository.AlertFilter) ([]*entity.Alert, error) {
	out := []*entity.Alert{}
	err := r.view(func(st *state, _ bool) error {
		for _, a := range sortedAlerts(st.alerts) {
			if filter.Status != "" && a.Status != filter.Status {
				continue
			}
			out = append(out, a.Clone())
		}
		return nil
	})
	return out, err
}

func (r *AlertRepo) Create(_ context.Context, alert *entity.Alert) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		st.alerts[alert.ID] = alert.Clone()
		return nil
	})
}

func (r *AlertRepo) Update(_ context.Context, alert *entity.Alert) error {
	return r.view(func(st *state, write bool) error {
		if !write {
			return errReadOnly
		}
		if _, ok := st.alerts[alert.ID]; !ok {
			return domain.NotFoundf("alerta %s no encontrada", alert.ID)
		}
		st.alerts[alert.ID] = alert.Clone()
		return nil
	})
}

func newestFirst(log []entity.Transfer) []entity.Transfer {
	out := make([]entity.Transfer, len(log))
	for i, t := range log {
		out[len(log)-1-i] = t
	}
	return out
}

func sortedAlerts(alerts map[string]*entity.Alert) []*entity.Alert {
	out := make([]*entity.Alert, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
