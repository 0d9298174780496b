package services

import (
	"context"
	"time"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/auth"
	"ehandout_backend/internal/email"
	"ehandout_backend/internal/identity"
	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/models"
	"ehandout_backend/internal/repositories"
	"ehandout_backend/internal/services/dto"
)

// UserAuthService covers the student login flow: identifier resolution,
// password check, email OTP and the session token. Unlike vendors, a
// successful OTP check here is purely a session gate and never mutates
// verification flags or account status.
type UserAuthService interface {
	Login(ctx context.Context, req *dto.UserLoginRequest) (*dto.OtpIssuedResponse, error)
	VerifyOtp(ctx context.Context, req *dto.UserVerifyOtpRequest) (*dto.UserLoginResponse, error)
	ResendOtp(ctx context.Context, req *dto.UserResendOtpRequest) (*dto.OtpIssuedResponse, error)

	Profile(ctx context.Context, userID string) (*dto.UserProfile, error)
	GetSessionTimeout(ctx context.Context, userID string) (*dto.SessionTimeoutResponse, error)
	SetSessionTimeout(ctx context.Context, userID string, req *dto.SessionTimeoutRequest) (*dto.SessionTimeoutResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	SubmitContact(ctx context.Context, userID string, req *dto.ContactRequest) error
}

type userAuthServiceImpl struct {
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
	tokens      TokenService
	sender      email.Sender
	otpTTL      time.Duration
}

func NewUserAuthService(
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactRepository,
	tokens TokenService,
	sender email.Sender,
	otpTTL time.Duration,
) UserAuthService {
	return &userAuthServiceImpl{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		tokens:      tokens,
		sender:      sender,
		otpTTL:      otpTTL,
	}
}

// Login checks the password and issues an OTP. The session token is only
// issued by VerifyOtp.
func (s *userAuthServiceImpl) Login(ctx context.Context, req *dto.UserLoginRequest) (*dto.OtpIssuedResponse, error) {
	user, err := s.resolve(ctx, req.Identifiers)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}
	return s.issueOtp(ctx, user)
}

func (s *userAuthServiceImpl) VerifyOtp(ctx context.Context, req *dto.UserVerifyOtpRequest) (*dto.UserLoginResponse, error) {
	user, err := s.resolve(ctx, req.Identifiers)
	if err != nil {
		return nil, err
	}

	if err := checkCode(user.Otp, user.OtpExpiry, req.Otp,
		appErrors.ErrNoPendingOtp, appErrors.ErrOtpExpired, appErrors.ErrOtpMismatch); err != nil {
		return nil, err
	}

	user.Otp = nil
	user.OtpExpiry = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	token, err := s.tokens.Sign(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.UserLoginResponse{Token: token, User: userProfile(user)}, nil
}

func (s *userAuthServiceImpl) ResendOtp(ctx context.Context, req *dto.UserResendOtpRequest) (*dto.OtpIssuedResponse, error) {
	user, err := s.resolve(ctx, req.Identifiers)
	if err != nil {
		return nil, err
	}
	return s.issueOtp(ctx, user)
}

func (s *userAuthServiceImpl) Profile(ctx context.Context, userID string) (*dto.UserProfile, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userProfile(user), nil
}

func (s *userAuthServiceImpl) GetSessionTimeout(ctx context.Context, userID string) (*dto.SessionTimeoutResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionTimeoutResponse{Timeout: user.SessionInactiveTimeout}, nil
}

// SetSessionTimeout stores the requested value as-is. Students have no
// timeout floor; only vendors do.
func (s *userAuthServiceImpl) SetSessionTimeout(ctx context.Context, userID string, req *dto.SessionTimeoutRequest) (*dto.SessionTimeoutResponse, error) {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.SessionInactiveTimeout = req.Timeout
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return &dto.SessionTimeoutResponse{Timeout: user.SessionInactiveTimeout}, nil
}

func (s *userAuthServiceImpl) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
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
	user.PasswordHash = hash
	if err := s.userRepo.Save(ctx, user); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *userAuthServiceImpl) SubmitContact(ctx context.Context, userID string, req *dto.ContactRequest) error {
	user, err := s.findByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.AccountStatus == models.AccountStatusSuspended {
		return appErrors.ErrAccountSuspended
	}

	contactEmail := req.Email
	if contactEmail == "" {
		contactEmail = user.Email
	}
	contact := &models.Contact{
		AccountID:       user.ID,
		AccountVariant:  "user",
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

func (s *userAuthServiceImpl) issueOtp(ctx context.Context, user *models.User) (*dto.OtpIssuedResponse, error) {
	code, err := auth.GenerateOTP()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	expiry := auth.OtpExpiry(s.otpTTL)
	if err := s.userRepo.SetOtp(ctx, user.ID, code, expiry); err != nil {
		return nil, appErrors.InternalError(err)
	}
	if err := s.sender.SendOtp(user.DeliveryEmail(), code, int(s.otpTTL.Minutes())); err != nil {
		logger.WithError(err).Warn("failed to send user otp email", "user_id", user.ID)
	}
	return &dto.OtpIssuedResponse{Otp: code}, nil
}

// resolve normalizes the identifiers and maps repository errors to the
// client-facing taxonomy. An ambiguous match is a data fault and fails
// loudly rather than picking a row.
func (s *userAuthServiceImpl) resolve(ctx context.Context, ids identity.Identifiers) (*models.User, error) {
	ids = ids.Normalize()
	if ids.Empty() {
		return nil, appErrors.BadRequest("Please provide an elite ID, share ID or email address.")
	}

	user, err := s.userRepo.Resolve(ctx, ids)
	if err != nil {
		switch {
		case appErrors.Is(err, repositories.ErrUserNotFound):
			return nil, appErrors.ErrUserNotFound
		case appErrors.Is(err, repositories.ErrAmbiguousIdentifier):
			return nil, appErrors.ErrAmbiguousIdentifier
		default:
			return nil, appErrors.InternalError(err)
		}
	}
	return user, nil
}

func (s *userAuthServiceImpl) findByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func userProfile(u *models.User) *dto.UserProfile {
	return &dto.UserProfile{
		ID:                     u.ID,
		UserID:                 u.UserID,
		EliteID:                u.PrimaryEliteID(),
		ShareID:                u.PrimaryShareID(),
		Email:                  u.DeliveryEmail(),
		EmailVerified:          u.EmailVerified,
		AccountStatus:          string(u.AccountStatus),
		SessionInactiveTimeout: u.SessionInactiveTimeout,
	}
}
