package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/application/ticket/usecases"
	domain "helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
)

type AttachmentRequest struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

func toAttachmentRefs(reqs []AttachmentRequest) []domain.AttachmentRef {
	if len(reqs) == 0 {
		return nil
	}
	refs := make([]domain.AttachmentRef, 0, len(reqs))
	for _, r := range reqs {
		refs = append(refs, domain.AttachmentRef{
			Filename:    r.Filename,
			SizeBytes:   r.SizeBytes,
			ContentType: r.ContentType,
		})
	}
	return refs
}

type CreateTicketRequest struct {
	Subject     string              `json:"subject" binding:"required,max=200"`
	Description string              `json:"description" binding:"required,max=5000"`
	CategoryID  uint                `json:"category_id" binding:"required"`
	Priority    string              `json:"priority,omitempty"`
	Attachments []AttachmentRequest `json:"attachments,omitempty"`
}

func (r *CreateTicketRequest) ToCommand(actor authorization.Actor) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Actor:       actor,
		Subject:     r.Subject,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Priority:    r.Priority,
		Attachments: toAttachmentRefs(r.Attachments),
	}
}

// UpdateTicketRequest is the PATCH body. Absent fields stay untouched;
// clear_assignee unassigns and cannot be combined with assignee_id.
type UpdateTicketRequest struct {
	Subject         *string `json:"subject,omitempty" binding:"omitempty,max=200"`
	Description     *string `json:"description,omitempty" binding:"omitempty,max=5000"`
	Status          *string `json:"status,omitempty"`
	Priority        *string `json:"priority,omitempty"`
	CategoryID      *uint   `json:"category_id,omitempty"`
	AssigneeID      *uint   `json:"assignee_id,omitempty"`
	ClearAssignee   bool    `json:"clear_assignee,omitempty"`
	ExpectedVersion *int    `json:"expected_version,omitempty"`
}

func (r *UpdateTicketRequest) ToCommand(actor authorization.Actor, ticketID uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		Actor:           actor,
		TicketID:        ticketID,
		Subject:         r.Subject,
		Description:     r.Description,
		Status:          r.Status,
		Priority:        r.Priority,
		CategoryID:      r.CategoryID,
		AssigneeID:      r.AssigneeID,
		ClearAssignee:   r.ClearAssignee,
		ExpectedVersion: r.ExpectedVersion,
	}
}

type AddCommentRequest struct {
	Body        string              `json:"body" binding:"required,max=10000"`
	ParentID    *uint               `json:"parent_id,omitempty"`
	IsInternal  bool                `json:"is_internal,omitempty"`
	Attachments []AttachmentRequest `json:"attachments,omitempty"`
}

func (r *AddCommentRequest) ToCommand(actor authorization.Actor, ticketID uint) usecases.AddCommentCommand {
	return usecases.AddCommentCommand{
		Actor:       actor,
		TicketID:    ticketID,
		Body:        r.Body,
		ParentID:    r.ParentID,
		IsInternal:  r.IsInternal,
		Attachments: toAttachmentRefs(r.Attachments),
	}
}

type EditCommentRequest struct {
	Body string `json:"body" binding:"required,max=10000"`
}

type ToggleVoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type ListTicketsRequest struct {
	Page         int
	PageSize     int
	Status       *string
	Priority     *string
	CategoryID   *uint
	AssigneeID   *uint
	AssignedToMe bool
	Search       string
	MinScore     *int64
	SortBy       string
	SortOrder    string
}

func (r *ListTicketsRequest) ToQuery(actor authorization.Actor) usecases.ListTicketsQuery {
	return usecases.ListTicketsQuery{
		Actor:        actor,
		Status:       r.Status,
		Priority:     r.Priority,
		CategoryID:   r.CategoryID,
		AssigneeID:   r.AssigneeID,
		AssignedToMe: r.AssignedToMe,
		Search:       r.Search,
		MinScore:     r.MinScore,
		Page:         r.Page,
		PageSize:     r.PageSize,
		SortBy:       r.SortBy,
		SortOrder:    r.SortOrder,
	}
}

func parseListTicketsRequest(c *gin.Context) (*ListTicketsRequest, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	req := &ListTicketsRequest{
		Page:      page,
		PageSize:  pageSize,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if status := c.Query("status"); status != "" {
		req.Status = &status
	}

	if priority := c.Query("priority"); priority != "" {
		req.Priority = &priority
	}

	if categoryID, err := parseOptionalUint(c, "category_id"); err != nil {
		return nil, err
	} else {
		req.CategoryID = categoryID
	}

	if assigneeID, err := parseOptionalUint(c, "assignee_id"); err != nil {
		return nil, err
	} else {
		req.AssigneeID = assigneeID
	}

	req.AssignedToMe = c.Query("assigned_to_me") == "true"

	if minScoreStr := c.Query("min_score"); minScoreStr != "" {
		minScore, err := strconv.ParseInt(minScoreStr, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("invalid min_score")
		}
		req.MinScore = &minScore
	}

	return req, nil
}

func parseOptionalUint(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key)
	}
	value := uint(parsed)
	return &value, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || parsed == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(parsed), nil
}
