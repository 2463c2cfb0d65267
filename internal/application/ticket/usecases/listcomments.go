package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

type ListCommentsQuery struct {
	Actor    authorization.Actor
	TicketID uint
}

type ListCommentsResult struct {
	Comments   []dto.CommentDTO
	TotalCount int
}

// ListCommentsUseCase returns a ticket's thread flattened in depth-first
// order with depth annotations. Internal notes are filtered for end users
// during the walk, and tombstoned comments are kept so replies have a
// visible anchor.
type ListCommentsUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	renderer    markdown.MarkdownService
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		renderer:    renderer,
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) (*ListCommentsResult, error) {
	if query.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if query.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	t, err := uc.ticketRepo.GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}
	if !authorization.Allows(query.Actor, authorization.OpViewTicket, t.CreatorID()) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}

	comments, err := uc.commentRepo.ListByTicketID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	thread := ticket.BuildThread(comments)
	viewerIsStaff := query.Actor.Role.IsStaff()

	items := make([]dto.CommentDTO, 0, thread.Size())
	for node := range thread.Walk(viewerIsStaff) {
		items = append(items, dto.ToCommentDTO(node, uc.renderBody(node.Comment)))
	}

	return &ListCommentsResult{
		Comments:   items,
		TotalCount: len(items),
	}, nil
}

func (uc *ListCommentsUseCase) renderBody(c *ticket.Comment) string {
	if c.IsDeleted() {
		return ""
	}
	html, err := uc.renderer.ToHTMLSanitized(c.Body())
	if err != nil {
		uc.logger.Warnw("failed to render comment body", "comment_id", c.ID(), "error", err)
		return ""
	}
	return html
}
