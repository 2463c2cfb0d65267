package dto

import (
	"time"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/mapper"
)

type TicketDTO struct {
	ID              uint            `json:"id"`
	Subject         string          `json:"subject"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"description_html,omitempty"`
	Status          string          `json:"status"`
	Priority        string          `json:"priority"`
	CategoryID      uint            `json:"category_id"`
	CreatorID       uint            `json:"creator_id"`
	AssigneeID      *uint           `json:"assignee_id"`
	Version         int             `json:"version"`
	Votes           VoteTallyDTO    `json:"votes"`
	Attachments     []AttachmentDTO `json:"attachments"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ResolvedAt      *time.Time      `json:"resolved_at"`
	ClosedAt        *time.Time      `json:"closed_at"`
}

type TicketListItemDTO struct {
	ID         uint   `json:"id"`
	Subject    string `json:"subject"`
	Excerpt    string `json:"excerpt"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	CategoryID uint   `json:"category_id"`
	CreatorID  uint   `json:"creator_id"`
	AssigneeID *uint  `json:"assignee_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// CommentDTO is one node of the flattened thread. Depth is the nesting
// level in the depth-first traversal order the list endpoint returns.
type CommentDTO struct {
	ID         uint       `json:"id"`
	TicketID   uint       `json:"ticket_id"`
	AuthorID   uint       `json:"author_id"`
	Body       string     `json:"body"`
	BodyHTML   string     `json:"body_html,omitempty"`
	ParentID   *uint      `json:"parent_id"`
	Depth      int        `json:"depth"`
	IsInternal bool       `json:"is_internal"`
	Deleted    bool       `json:"deleted"`
	CreatedAt  time.Time  `json:"created_at"`
	EditedAt   *time.Time `json:"edited_at"`
}

type VoteTallyDTO struct {
	Upvotes   int64  `json:"upvotes"`
	Downvotes int64  `json:"downvotes"`
	Score     int64  `json:"score"`
	MyVote    string `json:"my_vote"`
}

type AttachmentDTO struct {
	ID          uint   `json:"id"`
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

func ToTicketDTO(t *ticket.Ticket, descriptionHTML string, votes VoteTallyDTO, attachments []ticket.AttachmentRef) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		ID:              t.ID(),
		Subject:         t.Subject(),
		Description:     t.Description(),
		DescriptionHTML: descriptionHTML,
		Status:          t.Status().String(),
		Priority:        t.Priority().String(),
		CategoryID:      t.CategoryID(),
		CreatorID:       t.CreatorID(),
		AssigneeID:      t.AssigneeID(),
		Version:         t.Version(),
		Votes:           votes,
		Attachments:     mapper.MapSlice(attachments, ToAttachmentDTO),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
		ResolvedAt:      t.ResolvedAt(),
		ClosedAt:        t.ClosedAt(),
	}
}

func ToTicketListItemDTO(t *ticket.Ticket, excerpt string) TicketListItemDTO {
	return TicketListItemDTO{
		ID:         t.ID(),
		Subject:    t.Subject(),
		Excerpt:    excerpt,
		Status:     t.Status().String(),
		Priority:   t.Priority().String(),
		CategoryID: t.CategoryID(),
		CreatorID:  t.CreatorID(),
		AssigneeID: t.AssigneeID(),
		CreatedAt:  t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt().Format(time.RFC3339),
	}
}

func ToCommentDTO(node ticket.ThreadNode, bodyHTML string) CommentDTO {
	c := node.Comment
	return CommentDTO{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Body:       c.Body(),
		BodyHTML:   bodyHTML,
		ParentID:   c.ParentID(),
		Depth:      node.Depth,
		IsInternal: c.IsInternal(),
		Deleted:    c.IsDeleted(),
		CreatedAt:  c.CreatedAt(),
		EditedAt:   c.EditedAt(),
	}
}

func ToVoteTallyDTO(tally ticket.VoteTally, myVote ticket.VoteState) VoteTallyDTO {
	return VoteTallyDTO{
		Upvotes:   tally.Upvotes,
		Downvotes: tally.Downvotes,
		Score:     tally.Score(),
		MyVote:    string(myVote),
	}
}

func ToAttachmentDTO(ref ticket.AttachmentRef) AttachmentDTO {
	return AttachmentDTO{
		ID:          ref.ID,
		Filename:    ref.Filename,
		SizeBytes:   ref.SizeBytes,
		ContentType: ref.ContentType,
	}
}
