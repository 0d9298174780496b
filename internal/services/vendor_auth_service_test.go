package services

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/models"
	"ehandout_backend/internal/services/dto"
)

type vendorFixture struct {
	svc     VendorAuthService
	repo    *fakeVendorRepo
	contact *fakeContactRepo
	sender  *fakeSender
	tokens  TokenService
}

func newVendorFixture(t *testing.T) *vendorFixture {
	t.Helper()
	repo := newFakeVendorRepo()
	contact := &fakeContactRepo{}
	sender := newFakeSender()
	tokens := newTestTokenService(newFakeLedger())
	return &vendorFixture{
		svc:     NewVendorAuthService(repo, contact, tokens, sender, 10*time.Minute),
		repo:    repo,
		contact: contact,
		sender:  sender,
		tokens:  tokens,
	}
}

func registerRequest() *dto.VendorRegisterRequest {
	return &dto.VendorRegisterRequest{
		Country:   "DE",
		Email:     "shop@example.com",
		PhoneCode: "+49",
		Mobile:    "1700000000",
		Password:  "longenough",
	}
}

func (f *vendorFixture) register(t *testing.T) *models.Vendor {
	t.Helper()
	resp, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotZero(t, resp.Otp)
	vendor, err := f.repo.FindByEmail(context.Background(), "shop@example.com")
	require.NoError(t, err)
	return vendor
}

func TestVendorRegisterIssuesOtp(t *testing.T) {
	f := newVendorFixture(t)

	resp, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	vendor, err := f.repo.FindByEmail(context.Background(), "shop@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.AccountStatusPending, vendor.AccountStatus)
	assert.False(t, vendor.EmailVerified)
	require.NotNil(t, vendor.Otp)
	// The echoed code, the stored slot and the mailed copy all agree.
	assert.Equal(t, *vendor.Otp, resp.Otp)
	assert.Equal(t, resp.Otp, f.sender.otps["shop@example.com"])
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), *vendor.OtpExpiry, time.Minute)
}

func TestVendorRegisterAssignsVendorID(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.register(t)

	assert.Regexp(t, regexp.MustCompile(`^V\d{10}$`), vendor.VendorID)
}

func TestVendorRegisterDuplicateEmail(t *testing.T) {
	f := newVendorFixture(t)
	f.register(t)

	_, err := f.svc.Register(context.Background(), registerRequest())
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestVendorRegisterDuplicateKeyRace(t *testing.T) {
	f := newVendorFixture(t)
	// A concurrent registration slips past the ExistsByEmail pre-check
	// and the insert lands on the unique index.
	f.repo.createErr = gorm.ErrDuplicatedKey

	_, err := f.svc.Register(context.Background(), registerRequest())
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestVendorVerifyOtpActivatesAccount(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.register(t)
	ctx := context.Background()

	resp, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{
		Email: vendor.Email,
		Otp:   strconv.Itoa(*vendor.Otp),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.Vendor.EmailVerified)
	assert.Equal(t, string(models.AccountStatusActive), resp.Vendor.AccountStatus)

	vendor, err = f.repo.FindByEmail(ctx, vendor.Email)
	require.NoError(t, err)
	assert.Nil(t, vendor.Otp)
	assert.Nil(t, vendor.OtpExpiry)
}

func TestVendorVerifyOtpOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("no pending otp", func(t *testing.T) {
		f := newVendorFixture(t)
		vendor := f.register(t)
		vendor.Otp = nil
		vendor.OtpExpiry = nil
		require.NoError(t, f.repo.Save(ctx, vendor))

		_, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: "123456"})
		assert.ErrorIs(t, err, appErrors.ErrNoPendingOtp)
	})

	t.Run("expired beats mismatch", func(t *testing.T) {
		f := newVendorFixture(t)
		vendor := f.register(t)
		past := time.Now().Add(-time.Minute)
		vendor.OtpExpiry = &past
		require.NoError(t, f.repo.Save(ctx, vendor))

		_, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: "000000"})
		assert.ErrorIs(t, err, appErrors.ErrOtpExpired)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newVendorFixture(t)
		vendor := f.register(t)

		_, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: "000000"})
		assert.ErrorIs(t, err, appErrors.ErrOtpMismatch)
	})

	t.Run("garbage reads as mismatch", func(t *testing.T) {
		f := newVendorFixture(t)
		vendor := f.register(t)

		_, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: "abcdef"})
		assert.ErrorIs(t, err, appErrors.ErrOtpMismatch)
	})
}

func TestVendorResendOtpReplacesPendingCode(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.register(t)
	ctx := context.Background()
	first := strconv.Itoa(*vendor.Otp)

	reissued, err := f.svc.ResendOtp(ctx, &dto.VendorResendOtpRequest{Email: vendor.Email})
	require.NoError(t, err)
	second := strconv.Itoa(reissued.Otp)

	// The old code must no longer verify once a new one was issued,
	// even in the unlikely event both codes collide.
	if first != second {
		_, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: first})
		assert.ErrorIs(t, err, appErrors.ErrOtpMismatch)
	}
	_, err = f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{Email: vendor.Email, Otp: second})
	assert.NoError(t, err)
}

func (f *vendorFixture) activate(t *testing.T) *models.Vendor {
	t.Helper()
	vendor := f.register(t)
	_, err := f.svc.VerifyOtp(context.Background(), &dto.VendorVerifyOtpRequest{
		Email: vendor.Email,
		Otp:   strconv.Itoa(*vendor.Otp),
	})
	require.NoError(t, err)
	vendor, err = f.repo.FindByEmail(context.Background(), vendor.Email)
	require.NoError(t, err)
	return vendor
}

func TestVendorLoginIssuesOtpNotToken(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &dto.VendorLoginRequest{
		Email:    vendor.Email,
		Password: "longenough",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.Otp)

	// Session only starts after the issued code is verified.
	auth, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{
		Email: vendor.Email,
		Otp:   strconv.Itoa(resp.Otp),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
}

func TestVendorLoginInvalidCredentials(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, &dto.VendorLoginRequest{Email: vendor.Email, Password: "wrongwrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	// Unknown email answers the same as a wrong password.
	_, err = f.svc.Login(ctx, &dto.VendorLoginRequest{Email: "nobody@example.com", Password: "longenough"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

// Suspension blocks contact submission only; login and verification keep
// working so the account stays readable.
func TestVendorLoginSuspendedStillIssuesOtp(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	vendor.AccountStatus = models.AccountStatusSuspended
	require.NoError(t, f.repo.Save(context.Background(), vendor))

	resp, err := f.svc.Login(context.Background(), &dto.VendorLoginRequest{
		Email:    vendor.Email,
		Password: "longenough",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.Otp)
}

func TestVendorLoginBeforeVerificationActivatesOnVerify(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.register(t)
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, &dto.VendorLoginRequest{
		Email:    vendor.Email,
		Password: "longenough",
	})
	require.NoError(t, err)

	// Verifying a login-issued code confirms the email and activates the
	// account just like a signup code.
	auth, err := f.svc.VerifyOtp(ctx, &dto.VendorVerifyOtpRequest{
		Email: vendor.Email,
		Otp:   strconv.Itoa(resp.Otp),
	})
	require.NoError(t, err)
	assert.True(t, auth.Vendor.EmailVerified)
	assert.Equal(t, string(models.AccountStatusActive), auth.Vendor.AccountStatus)
}

func TestVendorTwoFactorEnableFlow(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	resp, err := f.svc.ToggleTwoFactor(ctx, vendor.ID, true)
	require.NoError(t, err)
	require.NotNil(t, resp.Otp)
	// Issuing the setup code does not flip the flag.
	assert.False(t, resp.TwoFactorEnabled)
	assert.Equal(t, *resp.Otp, f.sender.twoFA[vendor.Email])

	status, err := f.svc.TwoFactorStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.False(t, status.TwoFactorEnabled)

	require.NoError(t, f.svc.VerifyTwoFactor(ctx, vendor.ID, strconv.Itoa(*resp.Otp)))

	status, err = f.svc.TwoFactorStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.True(t, status.TwoFactorEnabled)
	assert.Equal(t, MinVendorInactiveTimeout, status.InactiveTimeout)
}

func TestVendorVerifyTwoFactorWithoutCode(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)

	err := f.svc.VerifyTwoFactor(context.Background(), vendor.ID, "1234")
	assert.ErrorIs(t, err, appErrors.ErrNoTwoFactorCode)
}

func TestVendorTwoFactorWrongCode(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	resp, err := f.svc.ToggleTwoFactor(ctx, vendor.ID, true)
	require.NoError(t, err)

	wrong := *resp.Otp + 1
	if wrong > 9999 {
		wrong = 1000
	}
	err = f.svc.VerifyTwoFactor(ctx, vendor.ID, strconv.Itoa(wrong))
	assert.ErrorIs(t, err, appErrors.ErrTwoFactorMismatch)

	status, err := f.svc.TwoFactorStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.False(t, status.TwoFactorEnabled)
}

func TestVendorDisableTwoFactorNeedsNoProof(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	resp, err := f.svc.ToggleTwoFactor(ctx, vendor.ID, true)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyTwoFactor(ctx, vendor.ID, strconv.Itoa(*resp.Otp)))

	off, err := f.svc.ToggleTwoFactor(ctx, vendor.ID, false)
	require.NoError(t, err)
	assert.False(t, off.TwoFactorEnabled)
	assert.Nil(t, off.Otp)

	status, err := f.svc.TwoFactorStatus(ctx, vendor.ID)
	require.NoError(t, err)
	assert.False(t, status.TwoFactorEnabled)
}

func TestVendorInactiveTimeoutFloor(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	// Values below the floor are rejected, not clamped.
	_, err := f.svc.SetInactiveTimeout(ctx, vendor.ID, &dto.SessionTimeoutRequest{Timeout: 5})
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)

	resp, err := f.svc.SetInactiveTimeout(ctx, vendor.ID, &dto.SessionTimeoutRequest{Timeout: 90})
	require.NoError(t, err)
	assert.Equal(t, 90, resp.Timeout)

	resp, err = f.svc.GetInactiveTimeout(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, resp.Timeout)
}

func TestVendorChangePassword(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	err := f.svc.ChangePassword(ctx, vendor.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "wrongwrong",
		NewPassword:     "newpassword",
		ConfirmPassword: "newpassword",
	})
	assert.ErrorIs(t, err, appErrors.ErrWrongPassword)

	err = f.svc.ChangePassword(ctx, vendor.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "longenough",
		NewPassword:     "newpassword",
		ConfirmPassword: "newpassword",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, &dto.VendorLoginRequest{Email: vendor.Email, Password: "newpassword"})
	assert.NoError(t, err)
}

func TestVendorContactSuspendedRejected(t *testing.T) {
	f := newVendorFixture(t)
	vendor := f.activate(t)
	ctx := context.Background()

	req := &dto.ContactRequest{MessageCategory: "billing", Message: "please help"}
	require.NoError(t, f.svc.SubmitContact(ctx, vendor.ID, req))
	require.Len(t, f.contact.contacts, 1)
	assert.Equal(t, vendor.Email, f.contact.contacts[0].Email)
	assert.Equal(t, "vendor", f.contact.contacts[0].AccountVariant)

	vendor.AccountStatus = models.AccountStatusSuspended
	require.NoError(t, f.repo.Save(ctx, vendor))
	err := f.svc.SubmitContact(ctx, vendor.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrAccountSuspended)
}

func TestVendorOtpEmailFailureIsNotFatal(t *testing.T) {
	f := newVendorFixture(t)
	f.sender.failWith = assert.AnError

	resp, err := f.svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	// The code is still echoed even when delivery fails.
	assert.NotZero(t, resp.Otp)
}
