package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/persistence/models"
	"helpdesk/internal/shared/biztime"
	"helpdesk/internal/shared/db"
)

// auditDetails is the JSON payload stored per audit row.
type auditDetails struct {
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, entry ticket.AuditEntry) error {
	details, err := json.Marshal(auditDetails{
		OldValue: entry.OldValue,
		NewValue: entry.NewValue,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	model := &models.AuditLogModel{
		TicketID:  entry.TicketID,
		ActorID:   entry.ActorID,
		Field:     entry.Field,
		Details:   details,
		CreatedAt: entry.Timestamp.UnixMilli(),
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]ticket.AuditEntry, error) {
	var rows []models.AuditLogModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]ticket.AuditEntry, 0, len(rows))
	for _, row := range rows {
		var details auditDetails
		if err := json.Unmarshal(row.Details, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details (id=%d): %w", row.ID, err)
		}
		entries = append(entries, ticket.AuditEntry{
			TicketID:  row.TicketID,
			ActorID:   row.ActorID,
			Field:     row.Field,
			OldValue:  details.OldValue,
			NewValue:  details.NewValue,
			Timestamp: biztime.FromMillis(row.CreatedAt),
		})
	}

	return entries, nil
}
