package services

import (
	"context"
	"strings"
	"time"

	"ehandout_backend/internal/identity"
	"ehandout_backend/internal/models"
	"ehandout_backend/internal/repositories"
)

// In-memory repository fakes. They mirror the lookup semantics of the
// real gorm-backed repositories closely enough for service tests.

type fakeVendorRepo struct {
	vendors   map[string]*models.Vendor // by id
	createErr error
}

func newFakeVendorRepo() *fakeVendorRepo {
	return &fakeVendorRepo{vendors: make(map[string]*models.Vendor)}
}

func (r *fakeVendorRepo) Create(_ context.Context, vendor *models.Vendor) error {
	if r.createErr != nil {
		return r.createErr
	}
	if vendor.ID == "" {
		vendor.ID = "vendor-" + vendor.Email
	}
	copied := *vendor
	r.vendors[vendor.ID] = &copied
	return nil
}

func (r *fakeVendorRepo) FindByID(_ context.Context, id string) (*models.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, repositories.ErrVendorNotFound
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVendorRepo) FindByEmail(_ context.Context, email string) (*models.Vendor, error) {
	for _, v := range r.vendors {
		if v.Email == email {
			copied := *v
			return &copied, nil
		}
	}
	return nil, repositories.ErrVendorNotFound
}

func (r *fakeVendorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeVendorRepo) Save(_ context.Context, vendor *models.Vendor) error {
	copied := *vendor
	r.vendors[vendor.ID] = &copied
	return nil
}

func (r *fakeVendorRepo) SetOtp(_ context.Context, id string, code int, expiry time.Time) error {
	v := r.vendors[id]
	v.Otp = &code
	v.OtpExpiry = &expiry
	return nil
}

func (r *fakeVendorRepo) ClearOtp(_ context.Context, id string) error {
	v := r.vendors[id]
	v.Otp = nil
	v.OtpExpiry = nil
	return nil
}

func (r *fakeVendorRepo) SetTwoFactorCode(_ context.Context, id string, code int, expiry time.Time) error {
	v := r.vendors[id]
	v.TwoFactorCode = &code
	v.TwoFactorCodeExpiry = &expiry
	return nil
}

func (r *fakeVendorRepo) ClearTwoFactorCode(_ context.Context, id string) error {
	v := r.vendors[id]
	v.TwoFactorCode = nil
	v.TwoFactorCodeExpiry = nil
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) {
	copied := *user
	r.users[user.ID] = &copied
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Resolve(_ context.Context, ids identity.Identifiers) (*models.User, error) {
	match := func(fold bool) []*models.User {
		eq := func(a, b string) bool {
			if a == "" || b == "" {
				return false
			}
			if fold {
				return strings.EqualFold(a, b)
			}
			return a == b
		}
		var found []*models.User
		for _, u := range r.users {
			if eq(u.EliteID, ids.EliteID) || eq(u.EliteIDLegacy, ids.EliteID) ||
				eq(u.ShareID, ids.ShareID) || eq(u.ShareIDLegacy, ids.ShareID) || eq(u.StudentID, ids.ShareID) ||
				eq(u.Email, ids.Email) || eq(u.EmailLegacy, ids.Email) {
				found = append(found, u)
			}
		}
		return found
	}

	found := match(false)
	if len(found) == 0 {
		found = match(true)
	}
	switch len(found) {
	case 0:
		return nil, repositories.ErrUserNotFound
	case 1:
		copied := *found[0]
		return &copied, nil
	default:
		return nil, repositories.ErrAmbiguousIdentifier
	}
}

func (r *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SetOtp(_ context.Context, id string, code int, expiry time.Time) error {
	u := r.users[id]
	u.Otp = &code
	u.OtpExpiry = &expiry
	return nil
}

func (r *fakeUserRepo) ClearOtp(_ context.Context, id string) error {
	u := r.users[id]
	u.Otp = nil
	u.OtpExpiry = nil
	return nil
}

type fakeContactRepo struct {
	contacts []*models.Contact
}

func (r *fakeContactRepo) Create(_ context.Context, contact *models.Contact) error {
	r.contacts = append(r.contacts, contact)
	return nil
}

type fakeLedger struct {
	revoked map[string]time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{revoked: make(map[string]time.Time)}
}

func (l *fakeLedger) Upsert(_ context.Context, token string, expiresAt time.Time) error {
	l.revoked[token] = expiresAt
	return nil
}

func (l *fakeLedger) Exists(_ context.Context, token string) (bool, error) {
	_, ok := l.revoked[token]
	return ok, nil
}

func (l *fakeLedger) DeleteExpired(_ context.Context) (int64, error) {
	var n int64
	for token, exp := range l.revoked {
		if time.Now().After(exp) {
			delete(l.revoked, token)
			n++
		}
	}
	return n, nil
}

type fakeManagerRepo struct {
	managers map[string]*models.Manager // by activation code
}

func (r *fakeManagerRepo) FindByActivationCode(_ context.Context, code string) (*models.Manager, error) {
	m, ok := r.managers[code]
	if !ok {
		return nil, repositories.ErrManagerNotFound
	}
	return m, nil
}

// fakeSender records outgoing codes so tests can replay them.
type fakeSender struct {
	otps     map[string]int // by recipient
	twoFA    map[string]int
	failWith error
}

func newFakeSender() *fakeSender {
	return &fakeSender{otps: make(map[string]int), twoFA: make(map[string]int)}
}

func (s *fakeSender) SendOtp(to string, code int, _ int) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.otps[to] = code
	return nil
}

func (s *fakeSender) SendTwoFactorCode(to string, code int, _ int) error {
	if s.failWith != nil {
		return s.failWith
	}
	s.twoFA[to] = code
	return nil
}
