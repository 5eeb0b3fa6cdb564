package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// CreateTransferRequest body para POST /api/transfers.
// La cantidad llega como decimal para poder rechazar fracciones con un error de validación.
type CreateTransferRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	FromWarehouseID string          `json:"from_warehouse_id" validate:"required"`
	ToWarehouseID   string          `json:"to_warehouse_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// TransferListQuery filtros de GET /api/transfers.
type TransferListQuery struct {
	ProductID string `query:"product_id"`
	Limit     int    `query:"limit" validate:"min=1,max=100"`
	Offset    int    `query:"offset" validate:"min=0"`
}

// DefaultPage aplica la página por defecto.
func (q *TransferListQuery) DefaultPage() {
	if q.Limit == 0 {
		q.Limit = 20
	}
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	FromWarehouseID string    `json:"from_warehouse_id"`
	ToWarehouseID   string    `json:"to_warehouse_id"`
	Quantity        int64     `json:"quantity"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// TransferListResponse lista paginada de traslados (más reciente primero).
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewTransferResponse mapea la entidad.
func NewTransferResponse(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:              t.ID,
		ProductID:       t.ProductID,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Quantity:        t.Quantity,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}
