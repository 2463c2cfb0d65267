package usecases

import (
	"context"
	"fmt"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type DeleteCommentCommand struct {
	Actor     authorization.Actor
	CommentID uint
}

type DeleteCommentResult struct {
	CommentID uint
}

// DeleteCommentUseCase tombstones a comment. The row survives so replies
// stay attached; only the body is blanked.
type DeleteCommentUseCase struct {
	commentRepo ticket.CommentRepository
	ticketRepo  ticket.TicketRepository
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewDeleteCommentUseCase(
	commentRepo ticket.CommentRepository,
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	logger logger.Interface,
) *DeleteCommentUseCase {
	return &DeleteCommentUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *DeleteCommentUseCase) Execute(ctx context.Context, cmd DeleteCommentCommand) (*DeleteCommentResult, error) {
	uc.logger.Infow("executing delete comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.Actor.ID)

	if cmd.CommentID == 0 {
		return nil, errors.NewValidationError("comment ID is required")
	}
	if cmd.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	c, err := uc.commentRepo.GetByID(ctx, cmd.CommentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() {
		return nil, errors.NewNotFoundError(fmt.Sprintf("comment %d not found", cmd.CommentID))
	}

	if !authorization.Allows(cmd.Actor, authorization.OpDeleteComment, c.AuthorID()) {
		return nil, errors.NewForbiddenError("only the author or an admin may delete a comment")
	}

	if err := c.SoftDelete(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	var ownerID uint
	if t, err := uc.ticketRepo.GetByID(ctx, c.TicketID()); err == nil && t != nil {
		ownerID = t.CreatorID()
	}

	recorder := ticket.NewChangeRecorder()
	recorder.Record(ticket.ChangeEvent{
		Type:          ticket.EventCommentDeleted,
		Entity:        "comment",
		EntityID:      c.ID(),
		TicketID:      c.TicketID(),
		Actor:         cmd.Actor,
		Field:         "deleted",
		OldValue:      "false",
		NewValue:      "true",
		TicketOwnerID: ownerID,
		Internal:      c.IsInternal(),
	})
	recorder.PublishTo(uc.publisher)

	uc.logger.Infow("comment deleted successfully", "comment_id", c.ID())

	return &DeleteCommentResult{CommentID: c.ID()}, nil
}
