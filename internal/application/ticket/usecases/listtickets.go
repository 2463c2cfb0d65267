package usecases

import (
	"context"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/query"
	"helpdesk/internal/shared/services/markdown"
)

const listExcerptLength = 140

type ListTicketsQuery struct {
	Actor        authorization.Actor
	Status       *string
	Priority     *string
	CategoryID   *uint
	AssigneeID   *uint
	AssignedToMe bool
	Search       string
	MinScore     *int64
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}

type ListTicketsResult struct {
	Tickets    []dto.TicketListItemDTO
	TotalCount int64
	Page       int
	PageSize   int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	renderer   markdown.MarkdownService
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	uc.logger.Infow("executing list tickets use case",
		"actor_id", q.Actor.ID,
		"page", q.Page,
		"page_size", q.PageSize)

	if q.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}

	filter := ticket.TicketFilter{
		BaseFilter: query.NewBaseFilter(
			query.WithPage(q.Page, q.PageSize),
			query.WithSort(q.SortBy, q.SortOrder),
		),
		Search:   q.Search,
		MinScore: q.MinScore,
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	if q.Status != nil {
		status, err := vo.NewTicketStatus(*q.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status")
		}
		filter.Status = &status
	}
	if q.Priority != nil {
		priority, err := vo.NewPriority(*q.Priority)
		if err != nil {
			return nil, errors.NewValidationError("invalid priority")
		}
		filter.Priority = &priority
	}
	if q.CategoryID != nil {
		filter.CategoryID = q.CategoryID
	}

	// End users only ever see their own tickets; the scoping happens in
	// the query, not by post-filtering a page.
	if !q.Actor.Role.IsStaff() {
		filter.CreatorID = &q.Actor.ID
	} else {
		if q.AssignedToMe {
			filter.AssigneeID = &q.Actor.ID
		} else if q.AssigneeID != nil {
			filter.AssigneeID = q.AssigneeID
		}
	}

	tickets, totalCount, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.ToTicketListItemDTO(t, uc.renderer.Excerpt(t.Description(), listExcerptLength)))
	}

	uc.logger.Infow("tickets listed successfully", "count", len(items), "total", totalCount)

	return &ListTicketsResult{
		Tickets:    items,
		TotalCount: totalCount,
		Page:       filter.Page,
		PageSize:   filter.Limit(),
	}, nil
}
