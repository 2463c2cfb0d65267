package migration

import (
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every table this service owns, in dependency
// order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.CategoryModel{},
		&models.TicketModel{},
		&models.CommentModel{},
		&models.VoteModel{},
		&models.AttachmentModel{},
		&models.AuditLogModel{},
	}
}

// Run applies the schema migrations.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
