package entity

import "time"

// StockLine cantidad registrada de un producto en una bodega.
// Identificada por el par (ProductID, WarehouseID); se crea con la primera entrada y nunca se borra.
type StockLine struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}
