package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// AlertHandler maneja las alertas de reposición.
type AlertHandler struct {
	reconciler *inventory.AlertReconciler
	workflow   *inventory.AlertWorkflowUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(reconciler *inventory.AlertReconciler, workflow *inventory.AlertWorkflowUseCase) *AlertHandler {
	return &AlertHandler{reconciler: reconciler, workflow: workflow}
}

// List reconcilia contra el ledger y devuelve las alertas (filtro opcional por estado).
// GET /api/alerts?status=
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var q dto.AlertListQuery
	if err := bindQuery(c, &q, nil); err != nil {
		return respondError(c, err)
	}
	if _, err := h.reconciler.ReconcileAlerts(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	list, err := h.workflow.ListAlerts(c.UserContext(), q.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertListResponse(list))
}

// Reconcile fuerza una pasada de reconciliación y devuelve todas las alertas.
// POST /api/alerts/reconcile
func (h *AlertHandler) Reconcile(c *fiber.Ctx) error {
	list, err := h.reconciler.ReconcileAlerts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertListResponse(list))
}

// GetByID GET /api/alerts/:id
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.workflow.GetAlert(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(out))
}

// UpdateStatus cambia el estado de la alerta y, si viene, el comentario.
// PATCH /api/alerts/:id/status
func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAlertStatusRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.workflow.SetAlertStatus(c.UserContext(), c.Params("id"), in.Status, in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(out))
}
