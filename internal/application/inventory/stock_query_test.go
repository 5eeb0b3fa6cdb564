package inventory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestProductStock_TotalYCategoria(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	uc := appinventory.NewStockQueryUseCase(f.store.Products(), f.store.Stock())
	ctx := context.Background()

	out, err := uc.ProductStock(ctx, testProductID)
	require.NoError(t, err)
	assert.EqualValues(t, 40, out.Total)
	assert.Len(t, out.Lines, 2)
	assert.Equal(t, entity.CategoryCritical, out.Recommendation.Category)
	assert.EqualValues(t, 110, out.Recommendation.Qty)

	// Un traslado no cambia el total.
	_, err = f.transfers.SubmitTransfer(ctx, transferInput(testW1, testW3, 5))
	require.NoError(t, err)
	out, err = uc.ProductStock(ctx, testProductID)
	require.NoError(t, err)
	assert.EqualValues(t, 40, out.Total)
	assert.Len(t, out.Lines, 3)

	// Otra grafía del mismo id devuelve el mismo producto, líneas ordenadas por bodega.
	upper, err := uc.ProductStock(ctx, strings.ToUpper(testProductID))
	require.NoError(t, err)
	assert.Equal(t, testProductID, upper.Product.ID)
	assert.EqualValues(t, 40, upper.Total)
	require.Len(t, upper.Lines, 3)
	assert.Equal(t, testW1, upper.Lines[0].WarehouseID)
	assert.Equal(t, testW3, upper.Lines[2].WarehouseID)

	other, err := uc.ProductStock(ctx, testOtherID)
	require.NoError(t, err)
	assert.Equal(t, "no reorder point set", other.Recommendation.Note)
}

func TestProductStock_Errores(t *testing.T) {
	f := newFixture(t, appinventory.WorkflowPermissive)
	uc := appinventory.NewStockQueryUseCase(f.store.Products(), f.store.Stock())

	_, err := uc.ProductStock(context.Background(), "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ProductStock(context.Background(), testMissingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
