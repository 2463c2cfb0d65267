package usecases

import (
	"context"
	"fmt"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type EditCommentCommand struct {
	Actor     authorization.Actor
	CommentID uint
	Body      string
}

type EditCommentResult struct {
	CommentID uint
	EditedAt  time.Time
}

// EditCommentUseCase lets a comment's author revise its body. End users
// only get a limited window after posting; staff authors are exempt.
// Nobody edits someone else's words, admins included.
type EditCommentUseCase struct {
	commentRepo ticket.CommentRepository
	ticketRepo  ticket.TicketRepository
	publisher   events.EventPublisher
	editWindow  time.Duration
	logger      logger.Interface
}

func NewEditCommentUseCase(
	commentRepo ticket.CommentRepository,
	ticketRepo ticket.TicketRepository,
	publisher events.EventPublisher,
	editWindow time.Duration,
	logger logger.Interface,
) *EditCommentUseCase {
	return &EditCommentUseCase{
		commentRepo: commentRepo,
		ticketRepo:  ticketRepo,
		publisher:   publisher,
		editWindow:  editWindow,
		logger:      logger,
	}
}

func (uc *EditCommentUseCase) Execute(ctx context.Context, cmd EditCommentCommand) (*EditCommentResult, error) {
	uc.logger.Infow("executing edit comment use case", "comment_id", cmd.CommentID, "actor_id", cmd.Actor.ID)

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

	if !authorization.Allows(cmd.Actor, authorization.OpEditComment, c.AuthorID()) {
		return nil, errors.NewForbiddenError("only the author may edit a comment")
	}

	if !cmd.Actor.Role.IsStaff() && uc.editWindow > 0 {
		if biztime.NowUTC().Sub(c.CreatedAt()) > uc.editWindow {
			return nil, errors.NewForbiddenError("the edit window for this comment has passed")
		}
	}

	oldBody := c.Body()
	if err := c.Edit(cmd.Body); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	uc.publishEdited(ctx, c, cmd.Actor, oldBody)

	uc.logger.Infow("comment edited successfully", "comment_id", c.ID())

	return &EditCommentResult{
		CommentID: c.ID(),
		EditedAt:  *c.EditedAt(),
	}, nil
}

func (uc *EditCommentUseCase) publishEdited(ctx context.Context, c *ticket.Comment, actor authorization.Actor, oldBody string) {
	var ownerID uint
	if t, err := uc.ticketRepo.GetByID(ctx, c.TicketID()); err == nil && t != nil {
		ownerID = t.CreatorID()
	}

	recorder := ticket.NewChangeRecorder()
	recorder.Record(ticket.ChangeEvent{
		Type:          ticket.EventCommentEdited,
		Entity:        "comment",
		EntityID:      c.ID(),
		TicketID:      c.TicketID(),
		Actor:         actor,
		Field:         "body",
		OldValue:      oldBody,
		NewValue:      c.Body(),
		TicketOwnerID: ownerID,
		Internal:      c.IsInternal(),
	})
	recorder.PublishTo(uc.publisher)
}
