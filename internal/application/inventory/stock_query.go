package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// ProductStock foto del stock de un producto: líneas por bodega, total y salud.
type ProductStock struct {
	Product        *entity.Product
	Lines          []*entity.StockLine
	Total          int64
	Recommendation inventory.Recommendation
}

// StockQueryUseCase consultas de solo lectura sobre el ledger.
type StockQueryUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// ProductStock devuelve las líneas del producto y su categoría calculada al vuelo.
func (uc *StockQueryUseCase) ProductStock(ctx context.Context, productID string) (*ProductStock, error) {
	raw := productID
	productID, ok := entity.CanonicalID(raw)
	if !ok {
		return nil, domain.Validationf("product_id inválido: %q", raw)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.NotFoundf("producto %s no encontrado", productID)
	}
	lines, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	var total int64
	for _, l := range lines {
		total += l.Quantity
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].WarehouseID < lines[j].WarehouseID })
	return &ProductStock{
		Product:        product,
		Lines:          lines,
		Total:          total,
		Recommendation: inventory.Recommend(total, product.ReorderPoint),
	}, nil
}
