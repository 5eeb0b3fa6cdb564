package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLineResponse cantidad de un producto en una bodega.
type StockLineResponse struct {
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductStockResponse salida de GET /api/products/:id/stock.
type ProductStockResponse struct {
	ProductID      string              `json:"product_id"`
	SKU            string              `json:"sku"`
	Name           string              `json:"name"`
	ReorderPoint   decimal.Decimal     `json:"reorder_point"`
	Lines          []StockLineResponse `json:"lines"`
	TotalStock     int64               `json:"total_stock"`
	Category       string              `json:"category"`
	RecommendedQty int64               `json:"recommended_qty"`
	Target         int64               `json:"target"`
	Note           string              `json:"note"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
