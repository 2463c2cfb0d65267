// Package subscribers holds the event handlers wired onto the in-process
// dispatcher: consumers of change events that must never fail the mutation
// that produced them.
package subscribers

import (
	"context"
	"fmt"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/logger"
)

const auditWriteTimeout = 5 * time.Second

// AuditWriter persists every change event verbatim to the audit log. It
// subscribes to all ticket, comment and vote event types.
type AuditWriter struct {
	auditRepo ticket.AuditLogRepository
	logger    logger.Interface
}

func NewAuditWriter(auditRepo ticket.AuditLogRepository, logger logger.Interface) *AuditWriter {
	return &AuditWriter{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// EventTypes lists every event type the writer records.
func (w *AuditWriter) EventTypes() []string {
	return []string{
		ticket.EventTicketCreated,
		ticket.EventTicketStatusChanged,
		ticket.EventTicketAssigned,
		ticket.EventTicketPriorityChanged,
		ticket.EventTicketCategoryChanged,
		ticket.EventTicketSubjectChanged,
		ticket.EventTicketDescriptionChanged,
		ticket.EventCommentCreated,
		ticket.EventCommentEdited,
		ticket.EventCommentDeleted,
		ticket.EventVoteToggled,
	}
}

// RegisterWith subscribes the writer to every event type it records.
func (w *AuditWriter) RegisterWith(subscriber events.EventSubscriber) error {
	for _, eventType := range w.EventTypes() {
		if err := subscriber.Subscribe(eventType, w); err != nil {
			return fmt.Errorf("failed to subscribe audit writer to %s: %w", eventType, err)
		}
	}
	return nil
}

func (w *AuditWriter) Handle(event events.DomainEvent) error {
	change, ok := event.(ticket.ChangeEvent)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	entry := ticket.AuditEntry{
		TicketID:  change.TicketID,
		ActorID:   change.Actor.ID,
		Field:     change.Field,
		OldValue:  change.OldValue,
		NewValue:  change.NewValue,
		Timestamp: change.OccurredAt,
	}
	if err := w.auditRepo.Append(ctx, entry); err != nil {
		w.logger.Errorw("failed to append audit entry",
			"ticket_id", change.TicketID,
			"event_type", change.Type,
			"error", err)
		return err
	}
	return nil
}

func (w *AuditWriter) CanHandle(eventType string) bool {
	for _, t := range w.EventTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}
