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

// UpdateTicketCommand carries the optional field changes of one atomic
// ticket update. Nil fields are left untouched. ClearAssignee unassigns;
// it cannot be combined with AssigneeID.
type UpdateTicketCommand struct {
	Actor           authorization.Actor
	TicketID        uint
	Subject         *string
	Description     *string
	Status          *string
	Priority        *string
	CategoryID      *uint
	AssigneeID      *uint
	ClearAssignee   bool
	ExpectedVersion *int
}

type UpdateTicketResult struct {
	TicketID      uint
	Status        string
	Priority      string
	Version       int
	ChangedFields []string
	UpdatedAt     time.Time
}

// UpdateTicketUseCase applies a multi-field ticket change all-or-nothing.
// Every requested field is authorized and validated before anything is
// written; the write happens under a pessimistic row lock and a version
// check, and one change event per field is published after the commit.
type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	categories ticket.CategoryResolver
	users      ticket.UserDirectory
	txMgr      *db.TransactionManager
	publisher  events.EventPublisher
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	categories ticket.CategoryResolver,
	users ticket.UserDirectory,
	txMgr *db.TransactionManager,
	publisher events.EventPublisher,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		categories: categories,
		users:      users,
		txMgr:      txMgr,
		publisher:  publisher,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		return nil, err
	}

	var (
		recorder = ticket.NewChangeRecorder()
		result   *UpdateTicketResult
	)

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if t == nil {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
		}

		if cmd.ExpectedVersion != nil && t.Version() != *cmd.ExpectedVersion {
			return errors.NewConflictError(
				fmt.Sprintf("ticket version mismatch: expected %d, have %d", *cmd.ExpectedVersion, t.Version()))
		}
		lockedVersion := t.Version()

		if err := uc.authorize(cmd, t); err != nil {
			return err
		}

		changed, err := uc.apply(txCtx, cmd, t, recorder)
		if err != nil {
			return err
		}
		if len(changed) == 0 {
			return errors.NewValidationError("no fields to update")
		}

		if err := uc.ticketRepo.Update(txCtx, t, lockedVersion); err != nil {
			return err
		}

		result = &UpdateTicketResult{
			TicketID:      t.ID(),
			Status:        t.Status().String(),
			Priority:      t.Priority().String(),
			Version:       t.Version(),
			ChangedFields: changed,
			UpdatedAt:     t.UpdatedAt(),
		}
		return nil
	})
	if txErr != nil {
		uc.logger.Warnw("update ticket rejected", "ticket_id", cmd.TicketID, "error", txErr)
		return nil, txErr
	}

	recorder.PublishTo(uc.publisher)

	uc.logger.Infow("ticket updated successfully",
		"ticket_id", cmd.TicketID,
		"changed_fields", result.ChangedFields,
		"version", result.Version)
	return result, nil
}

func (uc *UpdateTicketUseCase) validateCommand(cmd UpdateTicketCommand) error {
	if cmd.TicketID == 0 {
		return errors.NewValidationError("ticket ID is required")
	}
	if cmd.Actor.IsZero() {
		return errors.NewValidationError("actor is required")
	}
	if cmd.AssigneeID != nil && cmd.ClearAssignee {
		return errors.NewValidationError("cannot set and clear assignee in the same update")
	}
	if cmd.Status != nil {
		if _, err := vo.NewTicketStatus(*cmd.Status); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	if cmd.Priority != nil {
		if _, err := vo.NewPriority(*cmd.Priority); err != nil {
			return errors.NewValidationError(err.Error())
		}
	}
	return nil
}

// authorize checks the policy for every requested field before any of them
// is applied, so a partially permitted command fails as a whole.
func (uc *UpdateTicketUseCase) authorize(cmd UpdateTicketCommand, t *ticket.Ticket) error {
	actor := cmd.Actor
	ownerID := t.CreatorID()

	if !authorization.Allows(actor, authorization.OpViewTicket, ownerID) {
		return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", t.ID()))
	}

	if cmd.Subject != nil || cmd.Description != nil || cmd.CategoryID != nil {
		if !authorization.Allows(actor, authorization.OpEditTicketBody, ownerID) {
			return errors.NewForbiddenError("not allowed to edit this ticket")
		}
		if !actor.Role.IsStaff() && !t.Status().IsOpen() {
			// Owners may only rewrite subject, description or category
			// while the ticket is still open.
			return errors.NewForbiddenError("ticket may no longer be edited by its owner")
		}
	}
	if cmd.Priority != nil {
		if !authorization.Allows(actor, authorization.OpChangePriority, ownerID) {
			return errors.NewForbiddenError("only support staff may change priority")
		}
	}
	if cmd.AssigneeID != nil || cmd.ClearAssignee {
		if !authorization.Allows(actor, authorization.OpAssignTicket, ownerID) {
			return errors.NewForbiddenError("only support staff may assign tickets")
		}
	}
	if cmd.Status != nil {
		if !authorization.Allows(actor, authorization.OpChangeStatus, ownerID) {
			return errors.NewForbiddenError("not allowed to change ticket status")
		}
		newStatus := vo.TicketStatus(*cmd.Status)
		if !actor.Role.IsStaff() && !newStatus.IsClosed() {
			// Ticket owners may only close their own tickets; every
			// other transition is staff work.
			return errors.NewForbiddenError("ticket owners may only close their tickets")
		}
		if t.Status().IsClosed() && !authorization.Allows(actor, authorization.OpReopenClosed, ownerID) {
			return errors.NewForbiddenError("only support staff may reopen a closed ticket")
		}
	}
	return nil
}

// apply mutates the locked ticket field by field, recording one change
// event per accepted field. Any rejection aborts the whole update.
func (uc *UpdateTicketUseCase) apply(
	ctx context.Context,
	cmd UpdateTicketCommand,
	t *ticket.Ticket,
	recorder *ticket.ChangeRecorder,
) ([]string, error) {
	var changed []string
	actor := cmd.Actor

	if cmd.Subject != nil && *cmd.Subject != t.Subject() {
		old := t.Subject()
		if err := t.UpdateSubject(*cmd.Subject); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		recorder.RecordTicketField(t, actor, ticket.EventTicketSubjectChanged, "subject", old, t.Subject())
		changed = append(changed, "subject")
	}

	if cmd.Description != nil && *cmd.Description != t.Description() {
		old := t.Description()
		if err := t.UpdateDescription(*cmd.Description); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		recorder.RecordTicketField(t, actor, ticket.EventTicketDescriptionChanged, "description", old, t.Description())
		changed = append(changed, "description")
	}

	if cmd.CategoryID != nil && *cmd.CategoryID != t.CategoryID() {
		category, err := uc.categories.Resolve(ctx, *cmd.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil || !category.Active {
			return nil, errors.NewInvalidCategoryError(*cmd.CategoryID)
		}
		old := t.CategoryID()
		if err := t.ChangeCategory(*cmd.CategoryID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		recorder.RecordTicketField(t, actor, ticket.EventTicketCategoryChanged, "category_id",
			strconv.FormatUint(uint64(old), 10), strconv.FormatUint(uint64(t.CategoryID()), 10))
		changed = append(changed, "category_id")
	}

	if cmd.Priority != nil {
		newPriority := vo.Priority(*cmd.Priority)
		if newPriority != t.Priority() {
			old := t.Priority()
			if err := t.ChangePriority(newPriority); err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
			recorder.RecordTicketField(t, actor, ticket.EventTicketPriorityChanged, "priority", old.String(), t.Priority().String())
			changed = append(changed, "priority")
		}
	}

	if cmd.AssigneeID != nil || cmd.ClearAssignee {
		var newAssignee *uint
		if cmd.AssigneeID != nil {
			role, err := uc.users.RoleOf(ctx, *cmd.AssigneeID)
			if err != nil {
				return nil, err
			}
			if !role.IsStaff() {
				return nil, errors.NewInvalidAssigneeError(*cmd.AssigneeID)
			}
			newAssignee = cmd.AssigneeID
		}
		if !assigneeEqual(t.AssigneeID(), newAssignee) {
			old := formatAssignee(t.AssigneeID())
			if err := t.AssignTo(newAssignee); err != nil {
				return nil, errors.NewValidationError(err.Error())
			}
			recorder.RecordTicketField(t, actor, ticket.EventTicketAssigned, "assignee_id", old, formatAssignee(t.AssigneeID()))
			changed = append(changed, "assignee_id")
		}
	}

	if cmd.Status != nil {
		newStatus := vo.TicketStatus(*cmd.Status)
		if newStatus != t.Status() {
			old := t.Status()
			if err := t.ChangeStatus(newStatus); err != nil {
				return nil, errors.NewInvalidTransitionError(old.String(), newStatus.String())
			}
			recorder.RecordTicketField(t, actor, ticket.EventTicketStatusChanged, "status", old.String(), t.Status().String())
			changed = append(changed, "status")
		}
	}

	return changed, nil
}

func assigneeEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
