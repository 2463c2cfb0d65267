package ticket

import (
	"fmt"
	"time"

	"helpdesk/internal/shared/biztime"
)

// VoteState is the caller-visible direction of a vote after a toggle.
type VoteState string

const (
	VoteStateUpvote   VoteState = "upvote"
	VoteStateDownvote VoteState = "downvote"
	VoteStateNone     VoteState = "none"
)

// Vote records a single user's vote on a ticket. Identity is the
// (ticketID, userID) pair; the storage layer enforces uniqueness with a
// composite unique index so concurrent first votes cannot both land.
type Vote struct {
	id        uint
	ticketID  uint
	userID    uint
	isUpvote  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewVote(ticketID, userID uint, isUpvote bool) (*Vote, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	return &Vote{
		ticketID:  ticketID,
		userID:    userID,
		isUpvote:  isUpvote,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructVote(
	id uint,
	ticketID uint,
	userID uint,
	isUpvote bool,
	createdAt, updatedAt time.Time,
) (*Vote, error) {
	if id == 0 {
		return nil, fmt.Errorf("vote ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Vote{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		isUpvote:  isUpvote,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (v *Vote) ID() uint {
	return v.id
}

func (v *Vote) TicketID() uint {
	return v.ticketID
}

func (v *Vote) UserID() uint {
	return v.userID
}

func (v *Vote) IsUpvote() bool {
	return v.isUpvote
}

func (v *Vote) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Vote) UpdatedAt() time.Time {
	return v.updatedAt
}

func (v *Vote) SetID(id uint) error {
	if v.id != 0 {
		return fmt.Errorf("vote ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("vote ID cannot be zero")
	}
	v.id = id
	return nil
}

// Flip reverses the vote direction in place, preserving createdAt.
func (v *Vote) Flip() {
	v.isUpvote = !v.isUpvote
	v.updatedAt = biztime.NowUTC()
}

// State returns the direction as a caller-visible vote state.
func (v *Vote) State() VoteState {
	if v == nil {
		return VoteStateNone
	}
	if v.isUpvote {
		return VoteStateUpvote
	}
	return VoteStateDownvote
}

// VoteTally is an aggregate computed from the raw vote rows. Score is
// always upvotes minus downvotes; there is no cached counter to drift.
type VoteTally struct {
	Upvotes   int64
	Downvotes int64
}

func (t VoteTally) Score() int64 {
	return t.Upvotes - t.Downvotes
}
