package usecases

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor       authorization.Actor
	Subject     string
	Description string
	CategoryID  uint
	Priority    string
	Attachments []ticket.AttachmentRef
}

type CreateTicketResult struct {
	TicketID  uint
	Status    string
	Priority  string
	CreatedAt time.Time
}

type CreateTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo ticket.AttachmentRepository
	categories     ticket.CategoryResolver
	txMgr          *db.TransactionManager
	publisher      events.EventPublisher
	logger         logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo ticket.AttachmentRepository,
	categories ticket.CategoryResolver,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		categories:     categories,
		txMgr:          txMgr,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error) {
	uc.logger.Infow("executing create ticket use case", "subject", cmd.Subject, "creator_id", cmd.Actor.ID)

	if cmd.Actor.IsZero() {
		return nil, errors.NewValidationError("actor is required")
	}

	priority := vo.PriorityMedium
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		priority = p
	}

	category, err := uc.categories.Resolve(ctx, cmd.CategoryID)
	if err != nil {
		uc.logger.Errorw("failed to resolve category", "category_id", cmd.CategoryID, "error", err)
		return nil, err
	}
	if category == nil || !category.Active {
		return nil, errors.NewInvalidCategoryError(cmd.CategoryID)
	}

	newTicket, err := ticket.NewTicket(cmd.Subject, cmd.Description, cmd.CategoryID, priority, cmd.Actor.ID)
	if err != nil {
		uc.logger.Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}
		for _, ref := range cmd.Attachments {
			if err := uc.attachmentRepo.SaveForTicket(txCtx, newTicket.ID(), ref); err != nil {
				return fmt.Errorf("failed to save attachment: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Errorw("failed to save ticket", "error", txErr)
		return nil, txErr
	}

	recorder := ticket.NewChangeRecorder()
	recorder.RecordTicketField(newTicket, cmd.Actor, ticket.EventTicketCreated, "status", "", newTicket.Status().String())
	recorder.PublishTo(uc.publisher)

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID())

	return &CreateTicketResult{
		TicketID:  newTicket.ID(),
		Status:    newTicket.Status().String(),
		Priority:  newTicket.Priority().String(),
		CreatedAt: newTicket.CreatedAt(),
	}, nil
}

func formatAssignee(assigneeID *uint) string {
	if assigneeID == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*assigneeID), 10)
}
