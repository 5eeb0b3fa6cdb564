package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockCategory salud del stock de un producto respecto a su punto de reorden.
type StockCategory string

const (
	CategoryCritical    StockCategory = "critical"
	CategoryLow         StockCategory = "low"
	CategoryAdequate    StockCategory = "adequate"
	CategoryOverstocked StockCategory = "overstocked"
)

// NeedsReorder indica si la categoría abre o mantiene una alerta.
func (c StockCategory) NeedsReorder() bool {
	return c == CategoryCritical || c == CategoryLow
}

// AlertStatus etapa del flujo de una alerta.
type AlertStatus string

const (
	AlertStatusNew          AlertStatus = "NEW"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusOrdered      AlertStatus = "ORDERED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
)

// AlertStatuses en orden de avance del flujo.
var AlertStatuses = []AlertStatus{
	AlertStatusNew, AlertStatusAcknowledged, AlertStatusOrdered, AlertStatusResolved,
}

// ParseAlertStatus valida un estado recibido desde fuera.
func ParseAlertStatus(s string) (AlertStatus, bool) {
	for _, st := range AlertStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Rank posición en el flujo (NEW=0 ... RESOLVED=3); -1 si no es un estado conocido.
func (s AlertStatus) Rank() int {
	for i, st := range AlertStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Alert alerta de reposición de un producto. Como máximo una no resuelta por producto.
// SKU, ProductName y ReorderPoint son una foto del catálogo al momento de crearla.
type Alert struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	TotalStock     int64           `json:"total_stock"`
	Category       StockCategory   `json:"category"`
	RecommendedQty int64           `json:"recommended_qty"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"` // RecommendedQty * costo unitario
	Note           string          `json:"note"`
	Status         AlertStatus     `json:"status"`
	Comment        *string         `json:"comment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Open true mientras la alerta no esté resuelta.
func (a *Alert) Open() bool { return a.Status != AlertStatusResolved }

// Clone copia la alerta incluyendo el comentario.
func (a *Alert) Clone() *Alert {
	c := *a
	if a.Comment != nil {
		s := *a.Comment
		c.Comment = &s
	}
	return &c
}
