package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    authorization.Actor
	TicketID uint
}

type DeleteTicketResult struct {
	TicketID uint
}

// DeleteTicketUseCase removes a ticket entirely, admin only. Comments and
// votes go with it via foreign key cascade; this is an administrative
// cleanup tool, not part of the normal lifecycle.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only admins may delete tickets")
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		return nil, fmt.Errorf("failed to delete ticket: %w", err)
	}

	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID, "deleted_by", cmd.Actor.ID)
	return &DeleteTicketResult{TicketID: cmd.TicketID}, nil
}
