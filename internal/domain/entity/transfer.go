package entity

import (
	"fmt"
	"time"
)

// TransferStatusCompleted único estado que produce el ejecutor de traslados.
const TransferStatusCompleted = "COMPLETED"

// Transfer registro inmutable de un traslado entre bodegas (log append-only, más reciente primero).
type Transfer struct {
	ID              string    `json:"id"`
	Seq             int64     `json:"seq"`
	ProductID       string    `json:"product_id"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	ToWarehouseID   string    `json:"to_warehouse_id"`
	Quantity        int64     `json:"quantity"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransferID arma el identificador a partir de la fecha de creación y la secuencia del log.
func TransferID(createdAt time.Time, seq int64) string {
	return fmt.Sprintf("TRF-%s-%06d", createdAt.UTC().Format("20060102"), seq)
}
