package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type GetTicketVotesQuery struct {
	Actor    authorization.Actor
	TicketID uint
}

type GetTicketVotesUseCase struct {
	ticketRepo ticket.TicketRepository
	voteRepo   ticket.VoteRepository
	logger     logger.Interface
}

func NewGetTicketVotesUseCase(
	ticketRepo ticket.TicketRepository,
	voteRepo ticket.VoteRepository,
	logger logger.Interface,
) *GetTicketVotesUseCase {
	return &GetTicketVotesUseCase{
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
		logger:     logger,
	}
}

func (uc *GetTicketVotesUseCase) Execute(ctx context.Context, query GetTicketVotesQuery) (*dto.VoteTallyDTO, error) {
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

	tally, err := uc.voteRepo.TallyByTicketID(ctx, query.TicketID)
	if err != nil {
		return nil, err
	}
	myVote, err := uc.voteRepo.GetByTicketAndUser(ctx, query.TicketID, query.Actor.ID)
	if err != nil {
		return nil, err
	}

	result := dto.ToVoteTallyDTO(tally, myVote.State())
	return &result, nil
}
