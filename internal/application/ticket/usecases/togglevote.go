package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/application/ticket/dto"
	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type ToggleVoteCommand struct {
	Actor    authorization.Actor
	TicketID uint
	IsUpvote bool
}

type ToggleVoteResult struct {
	TicketID uint
	State    ticket.VoteState
	Tally    dto.VoteTallyDTO
}

// ToggleVoteUseCase flips the caller's vote on a ticket. Toggling is
// idempotent per direction: voting the same way twice removes the vote,
// voting the other way reverses it in place. The caller's existing row is
// read under a row lock so concurrent toggles by the same user serialize;
// racing first votes are caught by the storage unique index and surface
// as a conflict the client can retry.
type ToggleVoteUseCase struct {
	ticketRepo ticket.TicketRepository
	voteRepo   ticket.VoteRepository
	txMgr      *db.TransactionManager
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewToggleVoteUseCase(
	ticketRepo ticket.TicketRepository,
	voteRepo ticket.VoteRepository,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ToggleVoteUseCase {
	return &ToggleVoteUseCase{
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
		txMgr:      txMgr,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *ToggleVoteUseCase) Execute(ctx context.Context, cmd ToggleVoteCommand) (*ToggleVoteResult, error) {
	uc.logger.Infow("executing toggle vote use case",
		"ticket_id", cmd.TicketID,
		"actor_id", cmd.Actor.ID,
		"is_upvote", cmd.IsUpvote)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	var (
		recorder = ticket.NewChangeRecorder()
		result   *ToggleVoteResult
	)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}
		if !authorization.Allows(cmd.Actor, authorization.OpVote, t.CreatorID()) {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		existing, err := uc.voteRepo.GetByTicketAndUserForUpdate(txCtx, cmd.TicketID, cmd.Actor.ID)
		if err != nil {
			return err
		}

		oldState := existing.State()
		var newState ticket.VoteState

		switch {
		case existing == nil:
			v, err := ticket.NewVote(cmd.TicketID, cmd.Actor.ID, cmd.IsUpvote)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.voteRepo.Save(txCtx, v); err != nil {
				if errors.IsDuplicateError(err) {
					return errors.NewConflictError("vote already recorded, retry the toggle")
				}
				return fmt.Errorf("failed to save vote: %w", err)
			}
			newState = v.State()

		case existing.IsUpvote() == cmd.IsUpvote:
			if err := uc.voteRepo.Delete(txCtx, existing.ID()); err != nil {
				return fmt.Errorf("failed to remove vote: %w", err)
			}
			newState = ticket.VoteStateNone

		default:
			existing.Flip()
			if err := uc.voteRepo.Update(txCtx, existing); err != nil {
				return fmt.Errorf("failed to update vote: %w", err)
			}
			newState = existing.State()
		}

		tally, err := uc.voteRepo.TallyByTicketID(txCtx, cmd.TicketID)
		if err != nil {
			return fmt.Errorf("failed to tally votes: %w", err)
		}

		recorder.Record(ticket.ChangeEvent{
			Type:          ticket.EventVoteToggled,
			Entity:        "vote",
			EntityID:      cmd.TicketID,
			TicketID:      cmd.TicketID,
			Actor:         cmd.Actor,
			Field:         "state",
			OldValue:      string(oldState),
			NewValue:      string(newState),
			TicketOwnerID: t.CreatorID(),
		})

		result = &ToggleVoteResult{
			TicketID: cmd.TicketID,
			State:    newState,
			Tally:    dto.ToVoteTallyDTO(tally, newState),
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Warnw("toggle vote rejected", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	recorder.PublishTo(uc.publisher)

	uc.logger.Infow("vote toggled successfully",
		"ticket_id", cmd.TicketID,
		"state", result.State,
		"score", result.Tally.Score)
	return result, nil
}
