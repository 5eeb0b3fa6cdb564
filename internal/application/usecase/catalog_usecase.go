package usecase

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// CatalogUseCase lectura del catálogo de productos y bodegas (se carga con cmd/seed).
type CatalogUseCase struct {
	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository, warehouses repository.WarehouseRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, warehouses: warehouses}
}

// ListProducts productos ordenados por SKU.
func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// ListWarehouses bodegas ordenadas por nombre.
func (uc *CatalogUseCase) ListWarehouses(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.warehouses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseResponse{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		ReorderPoint: p.ReorderPoint,
		UnitCost:     p.UnitCost,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
