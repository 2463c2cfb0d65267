package usecases

import (
	"context"
	"fmt"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	Actor       authorization.Actor
	TicketID    uint
	Body        string
	ParentID    *uint
	IsInternal  bool
	Attachments []ticket.AttachmentRef
}

type AddCommentResult struct {
	CommentID  uint
	IsInternal bool
	CreatedAt  time.Time
}

type AddCommentUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	txMgr          *db.TransactionManager
	publisher      events.EventPublisher
	logger         logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		txMgr:          txMgr,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if cmd.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	var (
		recorder = ticket.NewChangeRecorder()
		comment  *ticket.Comment
	)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		if !authorization.Allows(cmd.Actor, authorization.OpComment, t.CreatorID()) {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		isInternal := cmd.IsInternal
		if isInternal && !authorization.AllowsRole(cmd.Actor, authorization.OpInternalComment) {
			return errors.NewForbiddenError("only support staff may post internal notes")
		}

		if cmd.ParentID != nil {
			parent, err := uc.commentRepo.GetByID(txCtx, *cmd.ParentID)
			if err != nil {
				return err
			}
			if parent == nil || parent.TicketID() != cmd.TicketID {
				return errors.NewInvalidParentError(derefParentID(cmd.ParentID))
			}
			if parent.IsDeleted() {
				return errors.NewInvalidParentError(derefParentID(cmd.ParentID), "cannot reply to a deleted comment")
			}
			// A reply under an internal note stays internal, so hiding
			// the parent from end users never orphans a visible child.
			if parent.IsInternal() {
				if !authorization.AllowsRole(cmd.Actor, authorization.OpInternalComment) {
					return errors.NewInvalidParentError(derefParentID(cmd.ParentID))
				}
				isInternal = true
			}
		}

		comment, err = ticket.NewComment(cmd.TicketID, cmd.Actor.ID, cmd.Body, cmd.ParentID, isInternal)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}

		if err := uc.commentRepo.Save(txCtx, comment); err != nil {
			return fmt.Errorf("failed to save comment: %w", err)
		}
		for _, ref := range cmd.Attachments {
			if err := uc.attachmentRepo.SaveForComment(txCtx, comment.ID(), ref); err != nil {
				return fmt.Errorf("failed to save attachment: %w", err)
			}
		}

		// Commenting counts as activity on the ticket.
		lockedVersion := t.Version()
		t.Touch()
		if err := uc.ticketRepo.Update(txCtx, t, lockedVersion); err != nil {
			return fmt.Errorf("failed to update ticket: %w", err)
		}

		recorder.Record(ticket.ChangeEvent{
			Type:          ticket.EventCommentCreated,
			Entity:        "comment",
			EntityID:      comment.ID(),
			TicketID:      cmd.TicketID,
			Actor:         cmd.Actor,
			Field:         "body",
			NewValue:      comment.Body(),
			TicketOwnerID: t.CreatorID(),
			Internal:      comment.IsInternal(),
		})
		return nil
	})
	if txErr != nil {
		uc.logger.Warnw("add comment rejected", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	recorder.PublishTo(uc.publisher)

	uc.logger.Infow("comment added successfully", "comment_id", comment.ID(), "ticket_id", cmd.TicketID)

	return &AddCommentResult{
		CommentID:  comment.ID(),
		IsInternal: comment.IsInternal(),
		CreatedAt:  comment.CreatedAt(),
	}, nil
}

func derefParentID(parentID *uint) uint {
	if parentID == nil {
		return 0
	}
	return *parentID
}
