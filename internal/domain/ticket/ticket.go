package ticket

import (
	"fmt"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/biztime"
)

// Ticket is the central support request entity. All mutation goes through
// methods that maintain the status graph and timestamp invariants:
// closedAt is set iff status is closed, resolvedAt survives a later close
// but is cleared when the ticket moves back into work.
type Ticket struct {
	id          uint
	subject     string
	description string
	status      vo.TicketStatus
	priority    vo.Priority
	categoryID  uint
	creatorID   uint
	assigneeID  *uint
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	resolvedAt  *time.Time
	closedAt    *time.Time
}

func NewTicket(
	subject string,
	description string,
	categoryID uint,
	priority vo.Priority,
	creatorID uint,
) (*Ticket, error) {
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return nil, fmt.Errorf("subject exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if categoryID == 0 {
		return nil, fmt.Errorf("category ID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		subject:     subject,
		description: description,
		status:      vo.StatusOpen,
		priority:    priority,
		categoryID:  categoryID,
		creatorID:   creatorID,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTicket(
	id uint,
	subject string,
	description string,
	status vo.TicketStatus,
	priority vo.Priority,
	categoryID uint,
	creatorID uint,
	assigneeID *uint,
	version int,
	createdAt, updatedAt time.Time,
	resolvedAt, closedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(subject) == 0 {
		return nil, fmt.Errorf("subject is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	return &Ticket{
		id:          id,
		subject:     subject,
		description: description,
		status:      status,
		priority:    priority,
		categoryID:  categoryID,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		resolvedAt:  resolvedAt,
		closedAt:    closedAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) CategoryID() uint {
	return t.categoryID
}

func (t *Ticket) CreatorID() uint {
	return t.creatorID
}

func (t *Ticket) AssigneeID() *uint {
	return t.assigneeID
}

func (t *Ticket) Version() int {
	return t.version
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

func (t *Ticket) ResolvedAt() *time.Time {
	return t.resolvedAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// touch bumps the optimistic-lock version and the updated timestamp.
func (t *Ticket) touch() {
	t.version++
	t.updatedAt = biztime.NowUTC()
}

// ChangeStatus applies a status transition. Transitions outside the allowed
// graph fail; a no-op change is rejected so callers never emit empty events.
func (t *Ticket) ChangeStatus(newStatus vo.TicketStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return fmt.Errorf("ticket is already %s", newStatus)
	}
	if !t.status.CanTransitionTo(newStatus) {
		return fmt.Errorf("cannot transition from %s to %s", t.status, newStatus)
	}

	wasClosed := t.status.IsClosed()
	t.status = newStatus
	t.touch()

	now := biztime.NowUTC()
	if newStatus.IsResolved() {
		t.resolvedAt = &now
	}
	if newStatus.IsClosed() {
		t.closedAt = &now
	}
	if wasClosed {
		// Reopened: the ticket is no longer closed nor resolved.
		t.closedAt = nil
		t.resolvedAt = nil
	}
	if newStatus.IsInProgress() {
		t.resolvedAt = nil
	}

	return nil
}

func (t *Ticket) ChangePriority(newPriority vo.Priority) error {
	if !newPriority.IsValid() {
		return fmt.Errorf("invalid priority: %s", newPriority)
	}
	if t.priority == newPriority {
		return fmt.Errorf("priority is already %s", newPriority)
	}

	t.priority = newPriority
	t.touch()
	return nil
}

// AssignTo sets or clears the assignee. Role validation for the assignee
// happens in the use case, which can consult the user directory.
func (t *Ticket) AssignTo(assigneeID *uint) error {
	if assigneeID != nil && *assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}

	t.assigneeID = assigneeID
	t.touch()
	return nil
}

func (t *Ticket) ChangeCategory(categoryID uint) error {
	if categoryID == 0 {
		return fmt.Errorf("category ID is required")
	}

	t.categoryID = categoryID
	t.touch()
	return nil
}

func (t *Ticket) UpdateSubject(subject string) error {
	if len(subject) == 0 {
		return fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return fmt.Errorf("subject exceeds maximum length of 200 characters")
	}

	t.subject = subject
	t.touch()
	return nil
}

func (t *Ticket) UpdateDescription(description string) error {
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}

	t.description = description
	t.touch()
	return nil
}

// Touch records activity on the ticket without a field change, used when a
// comment is added. It still bumps the version so concurrent editors see
// the activity as a conflicting write.
func (t *Ticket) Touch() {
	t.touch()
}

// IsOwnedBy reports whether userID created this ticket.
func (t *Ticket) IsOwnedBy(userID uint) bool {
	return t.creatorID == userID
}

// Validate checks entity invariants, including closedAt set iff closed.
func (t *Ticket) Validate() error {
	if len(t.subject) == 0 {
		return fmt.Errorf("subject is required")
	}
	if len(t.description) == 0 {
		return fmt.Errorf("description is required")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	if !t.priority.IsValid() {
		return fmt.Errorf("invalid priority")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	if t.status.IsClosed() != (t.closedAt != nil) {
		return fmt.Errorf("closedAt must be set exactly when status is closed")
	}
	return nil
}
