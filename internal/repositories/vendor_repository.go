package repositories

import (
	"context"
	"errors"
	"time"

	"ehandout_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVendorNotFound = errors.New("vendor not found")

// VendorRepository persists store vendor accounts.
type VendorRepository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id string) (*models.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*models.Vendor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, vendor *models.Vendor) error

	// SetOtp overwrites the OTP slot. A fresh issue always replaces any
	// pending code (last write wins).
	SetOtp(ctx context.Context, id string, code int, expiry time.Time) error
	ClearOtp(ctx context.Context, id string) error

	SetTwoFactorCode(ctx context.Context, id string, code int, expiry time.Time) error
	ClearTwoFactorCode(ctx context.Context, id string) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) FindByEmail(ctx context.Context, email string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *vendorRepository) Save(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

func (r *vendorRepository) SetOtp(ctx context.Context, id string, code int, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp": code, "otp_expiry": expiry}).Error
}

func (r *vendorRepository) ClearOtp(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp": nil, "otp_expiry": nil}).Error
}

func (r *vendorRepository) SetTwoFactorCode(ctx context.Context, id string, code int, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"two_factor_code": code, "two_factor_code_expiry": expiry}).Error
}

func (r *vendorRepository) ClearTwoFactorCode(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"two_factor_code": nil, "two_factor_code_expiry": nil}).Error
}
