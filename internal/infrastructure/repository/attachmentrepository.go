package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/db"
)

// AttachmentRepository stores attachment references. Only metadata lives
// here; the bytes stay with the external attachment service.
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) SaveForTicket(ctx context.Context, ticketID uint, ref ticket.AttachmentRef) error {
	return r.save(ctx, &models.AttachmentModel{
		TicketID:    &ticketID,
		Filename:    ref.Filename,
		SizeBytes:   ref.SizeBytes,
		ContentType: ref.ContentType,
	})
}

func (r *AttachmentRepository) SaveForComment(ctx context.Context, commentID uint, ref ticket.AttachmentRef) error {
	return r.save(ctx, &models.AttachmentModel{
		CommentID:   &commentID,
		Filename:    ref.Filename,
		SizeBytes:   ref.SizeBytes,
		ContentType: ref.ContentType,
	})
}

func (r *AttachmentRepository) save(ctx context.Context, model *models.AttachmentModel) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}

func (r *AttachmentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]ticket.AttachmentRef, error) {
	var rows []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	refs := make([]ticket.AttachmentRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, ticket.AttachmentRef{
			ID:          row.ID,
			Filename:    row.Filename,
			SizeBytes:   row.SizeBytes,
			ContentType: row.ContentType,
		})
	}

	return refs, nil
}
