package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/db"

	"helpdesk/internal/infrastructure/persistence/models"
)

// CategoryRepository resolves category references for the core. Category
// administration happens elsewhere; the core only checks existence and
// the active flag.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Resolve(ctx context.Context, categoryID uint) (*ticket.CategoryRef, error) {
	var model models.CategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	return &ticket.CategoryRef{
		ID:     model.ID,
		Active: model.Active,
	}, nil
}

// UserDirectory answers role lookups against the local user table.
type UserDirectory struct {
	db *gorm.DB
}

func NewUserDirectory(db *gorm.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

func (d *UserDirectory) RoleOf(ctx context.Context, userID uint) (authorization.UserRole, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, d.db)

	if err := tx.First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return authorization.RoleEndUser, nil
		}
		return authorization.RoleEndUser, fmt.Errorf("failed to look up user role: %w", err)
	}

	return authorization.ParseUserRole(model.Role), nil
}
