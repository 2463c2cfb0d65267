package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
)

// voteScoreExpr computes a ticket's score from the raw vote rows. There is
// no cached counter on the ticket row, so the score can never drift.
const voteScoreExpr = "(SELECT COALESCE(SUM(CASE WHEN is_upvote THEN 1 ELSE -1 END), 0) " +
	"FROM ticket_votes WHERE ticket_votes.ticket_id = tickets.id)"

// priorityRankExpr orders the priority enum by urgency instead of
// alphabetically.
const priorityRankExpr = "CASE priority " +
	"WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'urgent' THEN 4 ELSE 0 END"

// allowedTicketOrderByFields whitelists ORDER BY keys to prevent SQL
// injection; values are the SQL expression each key sorts on.
var allowedTicketOrderByFields = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"priority":   priorityRankExpr,
	"vote_score": voteScoreExpr,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes the full row guarded by the optimistic version check.
// Zero rows affected means another writer got there first.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket, expectedVersion int) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError(
			fmt.Sprintf("ticket %d was modified concurrently", t.ID()))
	}

	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket comments: %w", err)
		}
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.VoteModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket votes: %w", err)
		}
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.AttachmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket attachments: %w", err)
		}

		result := tx.Delete(&models.TicketModel{}, ticketID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", ticketID))
		}
		return nil
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return r.getByID(ctx, ticketID, false)
}

func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	return r.getByID(ctx, ticketID, true)
}

func (r *TicketRepository) getByID(ctx context.Context, ticketID uint, forUpdate bool) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		tx = tx.Scopes(db.Locked())
	}

	if err := tx.First(&model, ticketID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(
	ctx context.Context,
	filter ticket.TicketFilter,
) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		query = query.Where("subject LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.MinScore != nil {
		query = query.Where(voteScoreExpr+" >= ?", *filter.MinScore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order(r.orderClause(filter))

	if limit := filter.Limit(); limit > 0 {
		query = query.Limit(limit).Offset(filter.Offset())
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

// orderClause validates the sort key against the whitelist and appends an
// id tie-break so pages under a fixed filter stay disjoint and exhaustive.
func (r *TicketRepository) orderClause(filter ticket.TicketFilter) string {
	expr, ok := allowedTicketOrderByFields[strings.ToLower(filter.SortBy)]
	if !ok {
		expr = "created_at"
	}

	order := "ASC"
	if filter.SortOrder == "" || strings.EqualFold(filter.SortOrder, "desc") {
		order = "DESC"
	}

	return expr + " " + order + ", id " + order
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
