package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/auth"
)

func newTestTokenService(ledger *fakeLedger) TokenService {
	manager := auth.NewTokenManager("test-secret", 7*24*time.Hour)
	return NewTokenService(manager, ledger, nil)
}

func TestTokenServiceSignAndAuthenticate(t *testing.T) {
	svc := newTestTokenService(newFakeLedger())
	ctx := context.Background()

	token, err := svc.Sign("acc-1", "a@b.com")
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.ID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(newFakeLedger())

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestTokenServiceRevokedBeatsValidSignature(t *testing.T) {
	svc := newTestTokenService(newFakeLedger())
	ctx := context.Background()

	token, err := svc.Sign("acc-1", "a@b.com")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, token))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, appErrors.ErrTokenLoggedOut)
}

func TestTokenServiceRevokedAnswerSurvivesExpiry(t *testing.T) {
	// An expired-but-ledgered token must still read as logged out, not
	// merely expired: the ledger check runs first.
	ledger := newFakeLedger()
	expired := NewTokenService(auth.NewTokenManager("test-secret", -time.Hour), ledger, nil)
	ctx := context.Background()

	token, err := expired.Sign("acc-1", "a@b.com")
	require.NoError(t, err)
	require.NoError(t, expired.Revoke(ctx, token))

	_, err = expired.Authenticate(ctx, token)
	assert.ErrorIs(t, err, appErrors.ErrTokenLoggedOut)
}

func TestTokenServiceRevokeLedgersUndecodableToken(t *testing.T) {
	ledger := newFakeLedger()
	svc := newTestTokenService(ledger)
	ctx := context.Background()

	require.NoError(t, svc.Revoke(ctx, "mangled-token"))

	exp, ok := ledger.revoked["mangled-token"]
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}

func TestTokenServiceRevokeKeepsEmbeddedExpiry(t *testing.T) {
	ledger := newFakeLedger()
	manager := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewTokenService(manager, ledger, nil)
	ctx := context.Background()

	token, err := svc.Sign("acc-1", "a@b.com")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, token))

	exp := ledger.revoked[token]
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}
