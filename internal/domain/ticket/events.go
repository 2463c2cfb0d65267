package ticket

import (
	"strconv"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/shared/authorization"
)

// Change event types exposed to the audit and notification collaborators.
const (
	EventTicketCreated            = "ticket.created"
	EventTicketStatusChanged      = "ticket.status_changed"
	EventTicketAssigned           = "ticket.assigned"
	EventTicketPriorityChanged    = "ticket.priority_changed"
	EventTicketCategoryChanged    = "ticket.category_changed"
	EventTicketSubjectChanged     = "ticket.subject_changed"
	EventTicketDescriptionChanged = "ticket.description_changed"
	EventCommentCreated           = "comment.created"
	EventCommentEdited            = "comment.edited"
	EventCommentDeleted           = "comment.deleted"
	EventVoteToggled              = "vote.toggled"
)

// ChangeEvent is an immutable record of one accepted field mutation. A
// multi-field ticket update produces one event per changed field. Events
// are published only after the owning transaction commits; delivery to
// collaborators is at-least-once.
type ChangeEvent struct {
	Type     string              `json:"type"`
	Entity   string              `json:"entity"`
	EntityID uint                `json:"entity_id"`
	TicketID uint                `json:"ticket_id"`
	Actor    authorization.Actor `json:"actor"`
	Field    string              `json:"field"`
	OldValue string              `json:"old_value"`
	NewValue string              `json:"new_value"`
	// TicketOwnerID lets the notification collaborator suppress
	// self-notification when the actor owns the ticket.
	TicketOwnerID uint `json:"ticket_owner_id"`
	// Internal marks events about internal notes, which are excluded
	// from end-user-directed notification payloads.
	Internal   bool      `json:"internal"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GetAggregateID implements events.DomainEvent: change events aggregate on
// the ticket.
func (e ChangeEvent) GetAggregateID() string {
	return strconv.FormatUint(uint64(e.TicketID), 10)
}

func (e ChangeEvent) GetEventType() string {
	return e.Type
}

func (e ChangeEvent) GetOccurredAt() time.Time {
	return e.OccurredAt
}

func (e ChangeEvent) GetVersion() int {
	return 1
}

var _ events.DomainEvent = ChangeEvent{}

// ChangeRecorder accumulates change events during a use case so they can
// be published together after the transaction commits.
type ChangeRecorder struct {
	events []ChangeEvent
}

func NewChangeRecorder() *ChangeRecorder {
	return &ChangeRecorder{}
}

// Record appends a change event, stamping the occurrence time.
func (r *ChangeRecorder) Record(event ChangeEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	r.events = append(r.events, event)
}

// RecordTicketField records a single ticket field change.
func (r *ChangeRecorder) RecordTicketField(t *Ticket, actor authorization.Actor, eventType, field, oldValue, newValue string) {
	r.Record(ChangeEvent{
		Type:          eventType,
		Entity:        "ticket",
		EntityID:      t.ID(),
		TicketID:      t.ID(),
		Actor:         actor,
		Field:         field,
		OldValue:      oldValue,
		NewValue:      newValue,
		TicketOwnerID: t.CreatorID(),
	})
}

// Events returns the recorded events in order.
func (r *ChangeRecorder) Events() []ChangeEvent {
	return r.events
}

// PublishTo hands every recorded event to the publisher. Call only after
// the mutation is durably committed; a publish failure must not roll the
// commit back, so errors are left to the publisher's own handling.
func (r *ChangeRecorder) PublishTo(publisher events.EventPublisher) {
	for _, e := range r.events {
		// Best effort: at-least-once is provided by the dispatcher,
		// a full buffer is surfaced by the publisher implementation.
		_ = publisher.Publish(e)
	}
}
