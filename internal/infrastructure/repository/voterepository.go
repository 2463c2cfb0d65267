package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/errors"
)

type VoteRepository struct {
	db     *gorm.DB
	mapper mappers.VoteMapper
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{
		db:     db,
		mapper: mappers.NewVoteMapper(),
	}
}

// Save inserts a new vote row. A racing insert for the same
// (ticket_id, user_id) pair trips the composite unique index and surfaces
// as a conflict for the caller to retry.
func (r *VoteRepository) Save(ctx context.Context, v *ticket.Vote) error {
	model := r.mapper.ToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("vote already exists for this ticket and user")
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}

	return v.SetID(model.ID)
}

func (r *VoteRepository) Update(ctx context.Context, v *ticket.Vote) error {
	model := r.mapper.ToModel(v)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.VoteModel{}).
		Where("id = ?", model.ID).
		Select("is_upvote", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update vote: %w", result.Error)
	}

	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, voteID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.VoteModel{}, voteID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete vote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("vote %d not found", voteID))
	}

	return nil
}

func (r *VoteRepository) GetByTicketAndUser(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	return r.getByTicketAndUser(ctx, ticketID, userID, false)
}

func (r *VoteRepository) GetByTicketAndUserForUpdate(ctx context.Context, ticketID, userID uint) (*ticket.Vote, error) {
	return r.getByTicketAndUser(ctx, ticketID, userID, true)
}

func (r *VoteRepository) getByTicketAndUser(ctx context.Context, ticketID, userID uint, forUpdate bool) (*ticket.Vote, error) {
	var model models.VoteModel
	tx := db.GetTxFromContext(ctx, r.db)
	if forUpdate {
		tx = tx.Scopes(db.Locked())
	}

	if err := tx.
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// TallyByTicketID recomputes the aggregate from the raw rows.
func (r *VoteRepository) TallyByTicketID(ctx context.Context, ticketID uint) (ticket.VoteTally, error) {
	var row struct {
		Upvotes   int64
		Downvotes int64
	}
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Model(&models.VoteModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN is_upvote THEN 1 ELSE 0 END), 0) AS upvotes, "+
				"COALESCE(SUM(CASE WHEN is_upvote THEN 0 ELSE 1 END), 0) AS downvotes").
		Where("ticket_id = ?", ticketID).
		Scan(&row).Error
	if err != nil {
		return ticket.VoteTally{}, fmt.Errorf("failed to tally votes: %w", err)
	}

	return ticket.VoteTally{
		Upvotes:   row.Upvotes,
		Downvotes: row.Downvotes,
	}, nil
}
