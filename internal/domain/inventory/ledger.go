package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// LedgerKey par (producto, bodega); como máximo una línea de stock por par.
type LedgerKey struct {
	ProductID   string
	WarehouseID string
}

// Ledger conjunto de líneas de stock en memoria. No valida invariantes: de eso se encarga
// el ejecutor de traslados. El valor cero no es usable; crear con NewLedger.
type Ledger struct {
	lines map[LedgerKey]entity.StockLine
}

// NewLedger construye un ledger a partir de líneas existentes.
func NewLedger(lines ...entity.StockLine) *Ledger {
	l := &Ledger{lines: make(map[LedgerKey]entity.StockLine, len(lines))}
	for _, line := range lines {
		l.lines[LedgerKey{line.ProductID, line.WarehouseID}] = line
	}
	return l
}

// QuantityOf cantidad registrada; 0 si la línea no existe.
func (l *Ledger) QuantityOf(productID, warehouseID string) int64 {
	return l.lines[LedgerKey{productID, warehouseID}].Quantity
}

// Has indica si existe una línea para el par.
func (l *Ledger) Has(productID, warehouseID string) bool {
	_, ok := l.lines[LedgerKey{productID, warehouseID}]
	return ok
}

// Line devuelve la línea del par si existe.
func (l *Ledger) Line(productID, warehouseID string) (entity.StockLine, bool) {
	line, ok := l.lines[LedgerKey{productID, warehouseID}]
	return line, ok
}

// SetQuantity crea la línea si no existe o sobrescribe su cantidad.
func (l *Ledger) SetQuantity(productID, warehouseID string, qty int64, at time.Time) {
	l.lines[LedgerKey{productID, warehouseID}] = entity.StockLine{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Quantity:    qty,
		UpdatedAt:   at,
	}
}

// TotalFor suma de cantidades de un producto en todas las bodegas.
func (l *Ledger) TotalFor(productID string) int64 {
	var total int64
	for k, line := range l.lines {
		if k.ProductID == productID {
			total += line.Quantity
		}
	}
	return total
}

// Totals suma por producto de todas las líneas.
func (l *Ledger) Totals() map[string]int64 {
	out := make(map[string]int64)
	for k, line := range l.lines {
		out[k.ProductID] += line.Quantity
	}
	return out
}

// Lines devuelve una copia de las líneas ordenada por producto y bodega (salida estable).
func (l *Ledger) Lines() []entity.StockLine {
	out := make([]entity.StockLine, 0, len(l.lines))
	for _, line := range l.lines {
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out
}

// Len número de líneas.
func (l *Ledger) Len() int { return len(l.lines) }

// Clone copia independiente del ledger.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{lines: make(map[LedgerKey]entity.StockLine, len(l.lines))}
	for k, v := range l.lines {
		c.lines[k] = v
	}
	return c
}
