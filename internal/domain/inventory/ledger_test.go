package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

func TestLedger_QuantityOfLineaInexistente(t *testing.T) {
	l := inventory.NewLedger()
	assert.Equal(t, int64(0), l.QuantityOf("p1", "w1"))
	assert.False(t, l.Has("p1", "w1"))
}

func TestLedger_SetQuantityCreaYSobrescribe(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	l := inventory.NewLedger()

	l.SetQuantity("p1", "w1", 30, now)
	require.True(t, l.Has("p1", "w1"))
	assert.Equal(t, int64(30), l.QuantityOf("p1", "w1"))

	l.SetQuantity("p1", "w1", 12, now.Add(time.Minute))
	line, ok := l.Line("p1", "w1")
	require.True(t, ok)
	assert.Equal(t, int64(12), line.Quantity)
	assert.Equal(t, now.Add(time.Minute), line.UpdatedAt)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_Totales(t *testing.T) {
	l := inventory.NewLedger(
		entity.StockLine{ProductID: "p1", WarehouseID: "w1", Quantity: 30},
		entity.StockLine{ProductID: "p1", WarehouseID: "w2", Quantity: 10},
		entity.StockLine{ProductID: "p2", WarehouseID: "w1", Quantity: 7},
	)
	assert.Equal(t, int64(40), l.TotalFor("p1"))
	assert.Equal(t, int64(0), l.TotalFor("p3"))
	assert.Equal(t, map[string]int64{"p1": 40, "p2": 7}, l.Totals())

	lines := l.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "w1", lines[0].WarehouseID)
	assert.Equal(t, "w2", lines[1].WarehouseID)
	assert.Equal(t, "p2", lines[2].ProductID)
}

func TestLedger_CloneIndependiente(t *testing.T) {
	l := inventory.NewLedger(entity.StockLine{ProductID: "p1", WarehouseID: "w1", Quantity: 5})
	c := l.Clone()
	c.SetQuantity("p1", "w1", 99, time.Now())
	assert.Equal(t, int64(5), l.QuantityOf("p1", "w1"))
	assert.Equal(t, int64(99), c.QuantityOf("p1", "w1"))
}
