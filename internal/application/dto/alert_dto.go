package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// UpdateAlertStatusRequest body para PATCH /api/alerts/:id/status.
// Comment nil = no tocar el comentario guardado.
type UpdateAlertStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// AlertListQuery filtros de GET /api/alerts.
type AlertListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=NEW ACKNOWLEDGED ORDERED RESOLVED"`
}

// AlertResponse salida de una alerta de reposición.
type AlertResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	TotalStock     int64           `json:"total_stock"`
	Category       string          `json:"category"`
	RecommendedQty int64           `json:"recommended_qty"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	Note           string          `json:"note"`
	Status         string          `json:"status"`
	Comment        *string         `json:"comment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AlertListResponse lista de alertas (más reciente primero).
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Total int             `json:"total"`
}

// NewAlertResponse mapea la entidad.
func NewAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		SKU:            a.SKU,
		ProductName:    a.ProductName,
		ReorderPoint:   a.ReorderPoint,
		TotalStock:     a.TotalStock,
		Category:       string(a.Category),
		RecommendedQty: a.RecommendedQty,
		EstimatedCost:  a.EstimatedCost,
		Note:           a.Note,
		Status:         string(a.Status),
		Comment:        a.Comment,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// NewAlertListResponse mapea una lista conservando el orden.
func NewAlertListResponse(alerts []*entity.Alert) AlertListResponse {
	items := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		items = append(items, NewAlertResponse(a))
	}
	return AlertListResponse{Items: items, Total: len(items)}
}
