package ticket

import (
	"context"
	"time"

	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/query"
)

// TicketFilter narrows and orders ticket list queries. MinScore filters on
// the vote aggregate computed from raw vote rows. Search matches subject
// and description.
type TicketFilter struct {
	query.BaseFilter

	Status     *vo.TicketStatus
	Priority   *vo.Priority
	CategoryID *uint
	CreatorID  *uint
	AssigneeID *uint
	Search     string
	MinScore   *int64
}

type TicketRepository interface {
	Save(ctx context.Context, t *Ticket) error
	// Update persists the ticket with an optimistic version check against
	// expectedVersion; a stale write returns a conflict error.
	Update(ctx context.Context, t *Ticket, expectedVersion int) error
	Delete(ctx context.Context, ticketID uint) error
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	// GetByIDForUpdate loads the ticket under a pessimistic row lock; it
	// must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, ticketID uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
}

type CommentRepository interface {
	Save(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
}

type VoteRepository interface {
	Save(ctx context.Context, v *Vote) error
	Update(ctx context.Context, v *Vote) error
	Delete(ctx context.Context, voteID uint) error
	// GetByTicketAndUserForUpdate loads the caller's vote row under a
	// pessimistic lock, returning nil when no row exists. Must be called
	// inside a transaction.
	GetByTicketAndUserForUpdate(ctx context.Context, ticketID, userID uint) (*Vote, error)
	GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*Vote, error)
	TallyByTicketID(ctx context.Context, ticketID uint) (VoteTally, error)
}

// AuditEntry is the shape persisted verbatim for the audit collaborator.
type AuditEntry struct {
	TicketID  uint
	ActorID   uint
	Field     string
	OldValue  string
	NewValue  string
	Timestamp time.Time
}

type AuditLogRepository interface {
	Append(ctx context.Context, entry AuditEntry) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]AuditEntry, error)
}

// CategoryRef is the category collaborator's contract: the core only needs
// identity and the active flag.
type CategoryRef struct {
	ID     uint
	Active bool
}

type CategoryResolver interface {
	Resolve(ctx context.Context, categoryID uint) (*CategoryRef, error)
}

// UserDirectory resolves a user's role, used to validate assignees.
type UserDirectory interface {
	RoleOf(ctx context.Context, userID uint) (authorization.UserRole, error)
}

// AttachmentRef is opaque file metadata from the attachment collaborator.
// The core stores the reference only, never file bytes.
type AttachmentRef struct {
	ID          uint
	Filename    string
	SizeBytes   int64
	ContentType string
}

type AttachmentRepository interface {
	SaveForTicket(ctx context.Context, ticketID uint, ref AttachmentRef) error
	SaveForComment(ctx context.Context, commentID uint, ref AttachmentRef) error
	ListByTicketID(ctx context.Context, ticketID uint) ([]AttachmentRef, error)
}
