package repositories

import (
	"context"
	"errors"

	"ehandout_backend/internal/models"

	"gorm.io/gorm"
)

var ErrManagerNotFound = errors.New("manager not found")

// ManagerRepository persists administrative accounts.
type ManagerRepository interface {
	FindByActivationCode(ctx context.Context, code string) (*models.Manager, error)
}

type managerRepository struct {
	db *gorm.DB
}

func NewManagerRepository(db *gorm.DB) ManagerRepository {
	return &managerRepository{db: db}
}

func (r *managerRepository) FindByActivationCode(ctx context.Context, code string) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.WithContext(ctx).Where("activation_code = ?", code).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return &manager, nil
}
