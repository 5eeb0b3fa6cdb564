package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

const (
	noThreshold = "no reorder point set"
	noAction    = "no action"
)

var (
	half       = decimal.NewFromFloat(0.5)
	oneAndHalf = decimal.NewFromFloat(1.5)
	two        = decimal.NewFromInt(2)
)

// Categorize clasifica el stock total de un producto frente a su punto de reorden.
// Para un punto de reorden fijo > 0, bajar el total nunca reduce la severidad.
func Categorize(total int64, reorderPoint decimal.Decimal) entity.StockCategory {
	if !reorderPoint.IsPositive() {
		return entity.CategoryAdequate
	}
	t := decimal.NewFromInt(total)
	switch {
	case t.LessThan(reorderPoint.Mul(half)):
		return entity.CategoryCritical
	case t.LessThan(reorderPoint):
		return entity.CategoryLow
	case t.LessThan(reorderPoint.Mul(two)):
		return entity.CategoryAdequate
	default:
		return entity.CategoryOverstocked
	}
}

// Recommendation cantidad sugerida de pedido y nota legible.
type Recommendation struct {
	Category entity.StockCategory
	Target   int64
	Qty      int64
	Note     string
}

// Recommend calcula la reposición sugerida.
// critical: objetivo = ceil(1.5 * RP); low: objetivo = RP (redondeado hacia arriba); resto: nada.
func Recommend(total int64, reorderPoint decimal.Decimal) Recommendation {
	category := Categorize(total, reorderPoint)
	if !reorderPoint.IsPositive() {
		return Recommendation{Category: category, Note: noThreshold}
	}
	var target int64
	switch category {
	case entity.CategoryCritical:
		target = reorderPoint.Mul(oneAndHalf).Ceil().IntPart()
	case entity.CategoryLow:
		target = reorderPoint.Ceil().IntPart()
	default:
		return Recommendation{Category: category, Note: noAction}
	}
	qty := target - total
	if qty < 0 {
		qty = 0
	}
	rec := Recommendation{Category: category, Target: target, Qty: qty}
	if category == entity.CategoryCritical {
		rec.Note = fmt.Sprintf("critical: order %d to reach %d", qty, target)
	} else {
		rec.Note = fmt.Sprintf("low: order %d to reach reorder point %d", qty, target)
	}
	return rec
}
