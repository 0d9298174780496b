package repositories

import (
	"context"

	"ehandout_backend/internal/models"

	"gorm.io/gorm"
)

// ContactRepository persists support submissions.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}
