package repositories

import (
	"context"
	"time"

	"ehandout_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvalidatedTokenRepository is the persistent revocation ledger.
type InvalidatedTokenRepository interface {
	// Upsert records the token as revoked. Logging out twice with the
	// same token refreshes the row instead of failing on the unique index.
	Upsert(ctx context.Context, token string, expiresAt time.Time) error

	Exists(ctx context.Context, token string) (bool, error)

	// DeleteExpired prunes rows whose recorded expiry has passed and
	// returns how many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

type invalidatedTokenRepository struct {
	db *gorm.DB
}

func NewInvalidatedTokenRepository(db *gorm.DB) InvalidatedTokenRepository {
	return &invalidatedTokenRepository{db: db}
}

func (r *invalidatedTokenRepository) Upsert(ctx context.Context, token string, expiresAt time.Time) error {
	row := models.InvalidatedToken{Token: token, ExpiresAt: expiresAt}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *invalidatedTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvalidatedToken{}).
		Where("token = ?", token).
		Count(&count).Error
	return count > 0, err
}

func (r *invalidatedTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.InvalidatedToken{})
	return result.RowsAffected, result.Error
}
