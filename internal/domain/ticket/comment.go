package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/constants"
)

// Comment is a threaded reply on a ticket. The parent reference is set at
// construction and never mutated afterwards; because a parent must already
// be persisted, the thread is structurally acyclic. Deletion is a soft
// tombstone so descendants stay attached.
type Comment struct {
	id         uint
	ticketID   uint
	authorID   uint
	body       string
	parentID   *uint
	isInternal bool
	deleted    bool
	createdAt  time.Time
	editedAt   *time.Time
}

func NewComment(
	ticketID uint,
	authorID uint,
	body string,
	parentID *uint,
	isInternal bool,
) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body cannot be empty")
	}
	if len(body) > constants.MaxCommentLength {
		return nil, fmt.Errorf("body exceeds maximum length of %d characters", constants.MaxCommentLength)
	}
	if parentID != nil && *parentID == 0 {
		return nil, fmt.Errorf("parent comment ID cannot be zero")
	}

	return &Comment{
		ticketID:   ticketID,
		authorID:   authorID,
		body:       body,
		parentID:   parentID,
		isInternal: isInternal,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructComment(
	id uint,
	ticketID uint,
	authorID uint,
	body string,
	parentID *uint,
	isInternal bool,
	deleted bool,
	createdAt time.Time,
	editedAt *time.Time,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == 0 {
		return nil, fmt.Errorf("author ID is required")
	}

	return &Comment{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		body:       body,
		parentID:   parentID,
		isInternal: isInternal,
		deleted:    deleted,
		createdAt:  createdAt,
		editedAt:   editedAt,
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) AuthorID() uint {
	return c.authorID
}

func (c *Comment) Body() string {
	return c.body
}

func (c *Comment) ParentID() *uint {
	return c.parentID
}

func (c *Comment) IsInternal() bool {
	return c.isInternal
}

func (c *Comment) IsDeleted() bool {
	return c.deleted
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) EditedAt() *time.Time {
	return c.editedAt
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

// Edit replaces the body and stamps editedAt. Identity, createdAt and the
// thread position never change.
func (c *Comment) Edit(newBody string) error {
	if c.deleted {
		return fmt.Errorf("cannot edit a deleted comment")
	}
	if len(newBody) == 0 {
		return fmt.Errorf("body cannot be empty")
	}
	if len(newBody) > constants.MaxCommentLength {
		return fmt.Errorf("body exceeds maximum length of %d characters", constants.MaxCommentLength)
	}

	now := biztime.NowUTC()
	c.body = newBody
	c.editedAt = &now
	return nil
}

// SoftDelete tombstones the comment body while keeping the row so replies
// stay attached to the thread.
func (c *Comment) SoftDelete() error {
	if c.deleted {
		return fmt.Errorf("comment is already deleted")
	}

	c.deleted = true
	c.body = constants.CommentTombstone
	return nil
}

// VisibleTo reports whether the comment can be shown to the given viewer.
// Internal notes are restricted to staff regardless of ticket ownership.
func (c *Comment) VisibleTo(isStaff bool) bool {
	return !c.isInternal || isStaff
}
