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

type GetTicketQuery struct {
	Actor    authorization.Actor
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	voteRepo       ticket.VoteRepository
	attachmentRepo ticket.AttachmentRepository
	renderer       markdown.MarkdownService
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	voteRepo ticket.VoteRepository,
	attachmentRepo ticket.AttachmentRepository,
	renderer markdown.MarkdownService,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		voteRepo:       voteRepo,
		attachmentRepo: attachmentRepo,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error) {
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

	// A ticket the actor may not see reads as missing, not as forbidden,
	// so ticket IDs do not leak across accounts.
	if !authorization.Allows(query.Actor, authorization.OpViewTicket, t.CreatorID()) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", query.TicketID))
	}

	tally, err := uc.voteRepo.TallyByTicketID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	myVote, err := uc.voteRepo.GetByTicketAndUser(ctx, query.TicketID, query.Actor.ID)
	if err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.ListByTicketID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}

	descriptionHTML, err := uc.renderer.ToHTMLSanitized(t.Description())
	if err != nil {
		uc.logger.Warnw("failed to render ticket description", "ticket_id", t.ID(), "error", err)
		descriptionHTML = ""
	}

	return dto.ToTicketDTO(t, descriptionHTML, dto.ToVoteTallyDTO(tally, myVote.State()), attachments), nil
}
