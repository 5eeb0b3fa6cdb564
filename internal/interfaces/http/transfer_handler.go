package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP de traslados entre bodegas.
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create registra un traslado.
// POST /api/transfers → 201 con el traslado; 400/404/409/500 con dto.ErrorResponse.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SubmitTransfer(c.UserContext(), inventory.TransferInput{
		ProductID:       in.ProductID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransferResponse(out))
}

// List traslados del más reciente al más antiguo.
// GET /api/transfers?product_id=&limit=&offset=
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var q dto.TransferListQuery
	if err := bindQuery(c, &q, q.DefaultPage); err != nil {
		return respondError(c, err)
	}
	list, err := h.uc.ListTransfers(c.UserContext(), repository.TransferFilter{
		ProductID: q.ProductID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.NewTransferResponse(t))
	}
	return c.JSON(dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	})
}
