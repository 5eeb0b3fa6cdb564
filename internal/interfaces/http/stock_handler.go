package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// StockHandler consultas del ledger por producto.
type StockHandler struct {
	uc *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetByProduct GET /api/products/:id/stock
func (h *StockHandler) GetByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ProductStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	lines := make([]dto.StockLineResponse, 0, len(out.Lines))
	for _, l := range out.Lines {
		lines = append(lines, dto.StockLineResponse{WarehouseID: l.WarehouseID, Quantity: l.Quantity, UpdatedAt: l.UpdatedAt})
	}
	return c.JSON(dto.ProductStockResponse{
		ProductID:      out.Product.ID,
		SKU:            out.Product.SKU,
		Name:           out.Product.Name,
		ReorderPoint:   out.Product.ReorderPoint,
		Lines:          lines,
		TotalStock:     out.Total,
		Category:       string(out.Recommendation.Category),
		RecommendedQty: out.Recommendation.Qty,
		Target:         out.Recommendation.Target,
		Note:           out.Recommendation.Note,
	})
}
