package services

import (
	"context"
	"time"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/auth"
	"ehandout_backend/internal/email"
	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/models"
	"ehandout_backend/internal/repositories"
	"ehandout_backend/internal/services/dto"

	"gorm.io/gorm"
)

// MinVendorInactiveTimeout is the floor, in minutes, for vendor session
// inactivity timeouts.
const MinVendorInactiveTimeout = 30

// VendorAuthService covers the store vendor account lifecycle. Both
// signup and login funnel through the single OTP slot: a password check
// only earns a code, and VerifyOtp is the sole issuer of session tokens.
type VendorAuthService interface {
	Register(ctx context.Context, req *dto.VendorRegisterRequest) (*dto.OtpIssuedResponse, error)
	VerifyOtp(ctx context.Context, req *dto.VendorVerifyOtpRequest) (*dto.VendorAuthResponse, error)
	ResendOtp(ctx context.Context, req *dto.VendorResendOtpRequest) (*dto.OtpIssuedResponse, error)
	Login(ctx context.Context, req *dto.VendorLoginRequest) (*dto.OtpIssuedResponse, error)

	// ToggleTwoFactor with enable=true issues a setup code but does not
	// flip the flag; VerifyTwoFactor proves possession and enables.
	// Disabling needs no proof.
	ToggleTwoFactor(ctx context.Context, vendorID string, enable bool) (*dto.TwoFactorToggleResponse, error)
	VerifyTwoFactor(ctx context.Context, vendorID, code string) error
	TwoFactorStatus(ctx context.Context, vendorID string) (*dto.TwoFactorStatusResponse, error)

	GetInactiveTimeout(ctx context.Context, vendorID string) (*dto.SessionTimeoutResponse, error)
	SetInactiveTimeout(ctx context.Context, vendorID string, req *dto.SessionTimeoutRequest) (*dto.SessionTimeoutResponse, error)
	ChangePassword(ctx context.Context, vendorID string, req *dto.ChangePasswordRequest) error
	SubmitContact(ctx context.Context, vendorID string, req *dto.ContactRequest) error
}

type vendorAuthServiceImpl struct {
	vendorRepo  repositories.VendorRepository
	contactRepo repositories.ContactRepository
	tokens      TokenService
	sender      email.Sender
	otpTTL      time.Duration
}

func NewVendorAuthService(
	vendorRepo repositories.VendorRepository,
	contactRepo repositories.ContactRepository,
	tokens TokenService,
	sender email.Sender,
	otpTTL time.Duration,
) VendorAuthService {
	return &vendorAuthServiceImpl{
		vendorRepo:  vendorRepo,
		contactRepo: contactRepo,
		tokens:      tokens,
		sender:      sender,
		otpTTL:      otpTTL,
	}
}

func (s *vendorAuthServiceImpl) Register(ctx context.Context, req *dto.VendorRegisterRequest) (*dto.OtpIssuedResponse, error) {
	exists, err := s.vendorRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if exists {
		return nil, appErrors.Conflict("An account with this email already exists.")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	vendorID, err := auth.GenerateVendorID()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	vendor := &models.Vendor{
		VendorID:        vendorID,
		Country:         req.Country,
		Email:           req.Email,
		PhoneCode:       req.PhoneCode,
		Mobile:          req.Mobile,
		PasswordHash:    hash,
		AccountStatus:   models.AccountStatusPending,
		InactiveTimeout: MinVendorInactiveTimeout,
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		// Two registrations racing past the ExistsByEmail pre-check land
		// on the unique index; the loser answers the same as the pre-check.
		if appErrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, appErrors.Conflict("An account with this email already exists.")
		}
		return nil, appErrors.InternalError(err)
	}

	return s.issueOtp(ctx, vendor)
}

func (s *vendorAuthServiceImpl) VerifyOtp(ctx context.Context, req *dto.VendorVerifyOtpRequest) (*dto.VendorAuthResponse, error) {
	vendor, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if err := checkCode(vendor.Otp, vendor.OtpExpiry, req.Otp,
		appErrors.ErrNoPendingOtp, appErrors.ErrOtpExpired, appErrors.ErrOtpMismatch); err != nil {
		return nil, err
	}

	// A successful OTP check always confirms the email and activates the
	// account, whichever flow issued the code.
	vendor.Otp = nil
	vendor.OtpExpiry = nil
	vendor.EmailVerified = true
	vendor.AccountStatus = models.AccountStatusActive
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, appErrors.InternalError(err)
	}

	token, err := s.tokens.Sign(vendor.ID, vendor.Email)
	if err != nil {
		return nil, err
	}
	return &dto.VendorAuthResponse{Token: token, Vendor: vendorProfile(vendor)}, nil
}

func (s *vendorAuthServiceImpl) ResendOtp(ctx context.Context, req *dto.VendorResendOtpRequest) (*dto.OtpIssuedResponse, error) {
	vendor, err := s.findByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	return s.issueOtp(ctx, vendor)
}

// Login checks the credentials and issues a fresh OTP. The session token
// only comes out of VerifyOtp.
func (s *vendorAuthServiceImpl) Login(ctx context.Context, req *dto.VendorLoginRequest) (*dto.OtpIssuedResponse, error) {
	vendor, err := s.vendorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if appErrors.Is(err, repositories.ErrVendorNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, vendor.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	return s.issueOtp(ctx, vendor)
}

func (s *vendorAuthServiceImpl) ToggleTwoFactor(ctx context.Context, vendorID string, enable bool) (*dto.TwoFactorToggleResponse, error) {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if !enable {
		vendor.TwoFactorEnabled = false
		vendor.TwoFactorCode = nil
		vendor.TwoFactorCodeExpiry = nil
		if err := s.vendorRepo.Save(ctx, vendor); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return &dto.TwoFactorToggleResponse{TwoFactorEnabled: false}, nil
	}

	code, err := auth.GenerateTwoFactorCode()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	expiry := auth.OtpExpiry(s.otpTTL)
	if err := s.vendorRepo.SetTwoFactorCode(ctx, vendor.ID, code, expiry); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if err := s.sender.SendTwoFactorCode(vendor.Email, code, int(s.otpTTL.Minutes())); err != nil {
		logger.WithError(err).Warn("failed to send vendor two-factor email", "vendor_id", vendor.ID)
	}

	// Flag stays off until the code is verified.
	return &dto.TwoFactorToggleResponse{TwoFactorEnabled: vendor.TwoFactorEnabled, Otp: &code}, nil
}

func (s *vendorAuthServiceImpl) VerifyTwoFactor(ctx context.Context, vendorID, code string) error {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return err
	}

	if err := checkCode(vendor.TwoFactorCode, vendor.TwoFactorCodeExpiry, code,
		appErrors.ErrNoTwoFactorCode, appErrors.ErrTwoFactorExpired, appErrors.ErrTwoFactorMismatch); err != nil {
		return err
	}

	vendor.TwoFactorCode = nil
	vendor.TwoFactorCodeExpiry = nil
	vendor.TwoFactorEnabled = true
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *vendorAuthServiceImpl) TwoFactorStatus(ctx context.Context, vendorID string) (*dto.TwoFactorStatusResponse, error) {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &dto.TwoFactorStatusResponse{
		TwoFactorEnabled: vendor.TwoFactorEnabled,
		InactiveTimeout:  vendor.InactiveTimeout,
	}, nil
}

func (s *vendorAuthServiceImpl) GetInactiveTimeout(ctx context.Context, vendorID string) (*dto.SessionTimeoutResponse, error) {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionTimeoutResponse{Timeout: vendor.InactiveTimeout}, nil
}

// SetInactiveTimeout rejects values below the vendor floor rather than
// clamping them.
func (s *vendorAuthServiceImpl) SetInactiveTimeout(ctx context.Context, vendorID string, req *dto.SessionTimeoutRequest) (*dto.SessionTimeoutResponse, error) {
	if req.Timeout < MinVendorInactiveTimeout {
		return nil, appErrors.BadRequest("Inactivity timeout must be at least 30 minutes.")
	}

	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	vendor.InactiveTimeout = req.Timeout
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return &dto.SessionTimeoutResponse{Timeout: vendor.InactiveTimeout}, nil
}

func (s *vendorAuthServiceImpl) ChangePassword(ctx context.Context, vendorID string, req *dto.ChangePasswordRequest) error {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, vendor.PasswordHash) {
		return appErrors.ErrWrongPassword
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		return appErrors.ErrWeakPassword
	}
	if req.NewPassword != req.ConfirmPassword {
		return appErrors.ErrPasswordConfirm
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return appErrors.InternalError(err)
	}
	vendor.PasswordHash = hash
	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *vendorAuthServiceImpl) SubmitContact(ctx context.Context, vendorID string, req *dto.ContactRequest) error {
	vendor, err := s.findByID(ctx, vendorID)
	if err != nil {
		return err
	}
	if vendor.AccountStatus == models.AccountStatusSuspended {
		return appErrors.ErrAccountSuspended
	}

	contactEmail := req.Email
	if contactEmail == "" {
		contactEmail = vendor.Email
	}
	contact := &models.Contact{
		AccountID:       vendor.ID,
		AccountVariant:  "vendor",
		Email:           contactEmail,
		FullName:        req.FullName,
		MessageCategory: req.MessageCategory,
		Message:         req.Message,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// issueOtp writes a fresh code over whatever is pending, mails it best
// effort and echoes it back.
func (s *vendorAuthServiceImpl) issueOtp(ctx context.Context, vendor *models.Vendor) (*dto.OtpIssuedResponse, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	expiry := auth.OtpExpiry(s.otpTTL)
	if err := s.vendorRepo.SetOtp(ctx, vendor.ID, code, expiry); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if err := s.sender.SendOtp(vendor.Email, code, int(s.otpTTL.Minutes())); err != nil {
		logger.WithError(err).Warn("failed to send vendor otp email", "vendor_id", vendor.ID)
	}
	return &dto.OtpIssuedResponse{Otp: code}, nil
}

func (s *vendorAuthServiceImpl) findByEmail(ctx context.Context, emailAddr string) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if appErrors.Is(err, repositories.ErrVendorNotFound) {
			return nil, appErrors.ErrVendorNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return vendor, nil
}

func (s *vendorAuthServiceImpl) findByID(ctx context.Context, id string) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrVendorNotFound) {
			return nil, appErrors.ErrVendorNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return vendor, nil
}

func vendorProfile(v *models.Vendor) *dto.VendorProfile {
	return &dto.VendorProfile{
		ID:              v.ID,
		VendorID:        v.VendorID,
		Country:         v.Country,
		Email:           v.Email,
		PhoneCode:       v.PhoneCode,
		Mobile:          v.Mobile,
		EmailVerified:   v.EmailVerified,
		MobileVerified:  v.MobileVerified,
		AccountStatus:   string(v.AccountStatus),
		InactiveTimeout: v.InactiveTimeout,
	}
}
