package repositories

import (
	"context"
	"errors"
	"time"

	"ehandout_backend/internal/identity"
	"ehandout_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrAmbiguousIdentifier is returned when the presented identifiers
	// match more than one account. Resolution must fail loudly rather
	// than pick one.
	ErrAmbiguousIdentifier = errors.New("identifier matches multiple accounts")
)

// UserRepository persists student accounts and resolves identifier lookups.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Resolve looks the account up by any of the presented identifiers,
	// first with exact matching across all alias columns, then with a
	// case-insensitive fallback pass.
	Resolve(ctx context.Context, ids identity.Identifiers) (*models.User, error)

	Save(ctx context.Context, user *models.User) error
	SetOtp(ctx context.Context, id string, code int, expiry time.Time) error
	ClearOtp(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Resolve(ctx context.Context, ids identity.Identifiers) (*models.User, error) {
	if ids.Empty() {
		return nil, ErrUserNotFound
	}

	user, err := r.resolveClause(ctx, identity.ExactClause(ids))
	if err == nil || !errors.Is(err, ErrUserNotFound) {
		return user, err
	}
	return r.resolveClause(ctx, identity.FoldedClause(ids))
}

// resolveClause fetches up to two rows so a multi-match can be detected
// without counting separately.
func (r *userRepository) resolveClause(ctx context.Context, clause identity.Clause) (*models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where(clause.SQL, clause.Args...).
		Limit(2).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, ErrUserNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, ErrAmbiguousIdentifier
	}
}

func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetOtp(ctx context.Context, id string, code int, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp": code, "otp_expiry": expiry}).Error
}

func (r *userRepository) ClearOtp(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp": nil, "otp_expiry": nil}).Error
}
