package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// WorkflowPolicy reglas de transición entre estados de alerta.
type WorkflowPolicy string

const (
	// WorkflowPermissive acepta cualquier estado desde cualquier otro.
	WorkflowPermissive WorkflowPolicy = "permissive"
	// WorkflowForward solo permite avanzar NEW -> ACKNOWLEDGED -> ORDERED -> RESOLVED
	// (saltar etapas hacia adelante y repetir el estado actual está permitido).
	WorkflowForward WorkflowPolicy = "forward"
)

// ParseWorkflowPolicy valor de configuración; vacío = permissive.
func ParseWorkflowPolicy(s string) (WorkflowPolicy, error) {
	switch WorkflowPolicy(s) {
	case "", WorkflowPermissive:
		return WorkflowPermissive, nil
	case WorkflowForward:
		return WorkflowForward, nil
	}
	return "", fmt.Errorf("política de flujo desconocida: %q", s)
}

// AlertWorkflowUseCase cambios manuales de estado de una alerta.
type AlertWorkflowUseCase struct {
	txRunner  TxRunner
	alertRepo repository.AlertRepository
	policy    WorkflowPolicy
	log       *logger.Logger
	now       Clock
}

// NewAlertWorkflowUseCase construye el caso de uso.
func NewAlertWorkflowUseCase(
	txRunner TxRunner,
	alertRepo repository.AlertRepository,
	policy WorkflowPolicy,
	log *logger.Logger,
) *AlertWorkflowUseCase {
	return &AlertWorkflowUseCase{
		txRunner:  txRunner,
		alertRepo: alertRepo,
		policy:    policy,
		log:       log,
		now:       systemClock,
	}
}

// WithClock reemplaza la fuente de tiempo.
func (uc *AlertWorkflowUseCase) WithClock(c Clock) *AlertWorkflowUseCase {
	uc.now = c
	return uc
}

// SetAlertStatus sobrescribe el estado, actualiza UpdatedAt y, solo si se envía, el comentario.
func (uc *AlertWorkflowUseCase) SetAlertStatus(ctx context.Context, alertID, status string, comment *string) (*entity.Alert, error) {
	next, ok := entity.ParseAlertStatus(status)
	if !ok {
		return nil, domain.Validationf("estado inválido: %q", status)
	}
	id, ok := entity.CanonicalID(alertID)
	if !ok {
		return nil, domain.NotFoundf("alerta %s no encontrada", alertID)
	}
	alertID = id

	var updated *entity.Alert
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Locks.LockAlerts(ctx); err != nil {
			return err
		}
		alert, err := repos.Alerts.GetByIDForUpdate(ctx, alertID)
		if err != nil {
			return fmt.Errorf("get alert: %w", err)
		}
		if alert == nil {
			return domain.NotFoundf("alerta %s no encontrada", alertID)
		}
		if uc.policy == WorkflowForward && next.Rank() < alert.Status.Rank() {
			return domain.Conflictf("transición no permitida: %s -> %s", alert.Status, next)
		}
		// Reabrir una alerta resuelta no puede dejar dos alertas abiertas para el producto.
		if !alert.Open() && next != entity.AlertStatusResolved {
			open, err := repos.Alerts.ListOpen(ctx)
			if err != nil {
				return fmt.Errorf("list open alerts: %w", err)
			}
			for _, o := range open {
				if o.ProductID == alert.ProductID {
					return domain.Conflictf("el producto %s ya tiene la alerta abierta %s", alert.ProductID, o.ID)
				}
			}
		}

		prev := alert.Status
		alert.Status = next
		alert.UpdatedAt = uc.now()
		if comment != nil {
			c := *comment
			alert.Comment = &c
		}
		if err := repos.Alerts.Update(ctx, alert); err != nil {
			return fmt.Errorf("update alert: %w", err)
		}
		uc.log.Info().
			Str("alert_id", alert.ID).
			Str("product_id", alert.ProductID).
			Str("from", string(prev)).
			Str("to", string(next)).
			Msg("estado de alerta actualizado")
		updated = alert
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetAlert obtiene una alerta por ID.
func (uc *AlertWorkflowUseCase) GetAlert(ctx context.Context, alertID string) (*entity.Alert, error) {
	id, ok := entity.CanonicalID(alertID)
	if !ok {
		return nil, domain.NotFoundf("alerta %s no encontrada", alertID)
	}
	alertID = id
	alert, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("get alert: %w", err)
	}
	if alert == nil {
		return nil, domain.NotFoundf("alerta %s no encontrada", alertID)
	}
	return alert, nil
}

// ListAlerts lista alertas, opcionalmente filtradas por estado.
func (uc *AlertWorkflowUseCase) ListAlerts(ctx context.Context, status string) ([]*entity.Alert, error) {
	var filter repository.AlertFilter
	if status != "" {
		st, ok := entity.ParseAlertStatus(status)
		if !ok {
			return nil, domain.Validationf("estado inválido: %q", status)
		}
		filter.Status = st
	}
	list, err := uc.alertRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return list, nil
}
