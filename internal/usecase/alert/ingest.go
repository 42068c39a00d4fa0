// Package alert implements the intake path for inbound debt-alert events.
package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/minseokoh/debtwatch/internal/adapter/dto"
	"github.com/minseokoh/debtwatch/internal/domain/entity"
	"github.com/minseokoh/debtwatch/internal/domain/repository"
)

// IngestAlertUseCase is the single write path: transport (or manual
// trigger) event -> validation -> store add -> controller admission ->
// escalation fan-out. Admission is event-driven; nothing ever re-scans the
// store list to discover new alerts.
type IngestAlertUseCase struct {
	store     repository.AlertStore
	admitter  Admitter
	notifiers []Notifier
	validate  *validator.Validate
	logger    Logger
	recorder  Recorder
}

// NewIngestAlertUseCase creates the intake use case with dependencies.
func NewIngestAlertUseCase(
	store repository.AlertStore,
	admitter Admitter,
	notifiers []Notifier,
	logger Logger,
	recorder Recorder,
) *IngestAlertUseCase {
	return &IngestAlertUseCase{
		store:     store,
		admitter:  admitter,
		notifiers: notifiers,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
		recorder:  recorder,
	}
}

// Execute processes one inbound alert event.
//
// Malformed payloads are rejected: the event is dropped with a warn log
// and entity.ErrInvalidEvent is returned, so the store's counter
// invariants only ever see well-formed category/urgency values.
// Cross-field inconsistencies (e.g. isOverdue disagreeing with the day
// offset) are accepted verbatim but flagged, never silently repaired.
func (uc *IngestAlertUseCase) Execute(ctx context.Context, event dto.DebtAlertEvent) error {
	// 1. Validate the wire payload
	if err := uc.validate.Struct(event); err != nil {
		uc.logger.Warn("rejecting malformed alert event",
			"alertID", event.ID,
			"error", err,
		)
		uc.recorder.Rejected("validation")
		return fmt.Errorf("%w: %v", entity.ErrInvalidEvent, err)
	}

	// 2. Build the domain alert
	alert, err := event.ToEntity()
	if err != nil {
		uc.logger.Warn("rejecting undecodable alert event",
			"alertID", event.ID,
			"error", err,
		)
		uc.recorder.Rejected("decode")
		return fmt.Errorf("%w: %v", entity.ErrInvalidEvent, err)
	}

	// 3. Flag producer inconsistencies without repairing them
	if err := alert.CheckConsistency(); err != nil {
		uc.logger.Warn("inconsistent alert fields from producer",
			"alertID", alert.ID,
			"issues", err.Error(),
		)
		uc.recorder.Inconsistent()
	}

	// 4. Add to the store; duplicate delivery is idempotent
	if err := uc.store.Add(alert); err != nil {
		if errors.Is(err, entity.ErrDuplicateAlert) {
			uc.logger.Debug("duplicate alert delivery, skipping",
				"alertID", alert.ID,
			)
			return nil
		}
		return fmt.Errorf("adding alert to store: %w", err)
	}

	uc.recorder.Received(string(alert.Category), string(alert.Urgency))
	uc.logger.Info("alert received",
		"alertID", alert.ID,
		"category", alert.Category,
		"urgency", alert.Urgency,
		"amount", alert.Amount,
	)

	// 5. Hand off to the notification controller
	uc.admitter.Admit(alert)

	// 6. Escalate overdue debts to external channels
	if alert.IsOverdue {
		uc.escalate(ctx, alert)
	}

	return nil
}

// escalate fans the alert out to all configured notifiers. Failures are
// logged and counted, never returned: escalation is best-effort and must
// not disturb the intake path.
func (uc *IngestAlertUseCase) escalate(ctx context.Context, alert *entity.Alert) {
	for _, notifier := range uc.notifiers {
		if err := notifier.Notify(ctx, alert); err != nil {
			uc.logger.Error("escalation failed",
				"notifier", notifier.Name(),
				"alertID", alert.ID,
				"error", err,
			)
			uc.recorder.EscalationFailed(notifier.Name())
			continue
		}

		uc.recorder.EscalationSent(notifier.Name())
		uc.logger.Info("escalation sent",
			"notifier", notifier.Name(),
			"alertID", alert.ID,
		)
	}
}
