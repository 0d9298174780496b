package services

import (
	"context"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/auth"
	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/repositories"
	"ehandout_backend/internal/tokencache"
)

// TokenService issues, authenticates and revokes session tokens.
type TokenService interface {
	Sign(accountID, email string) (string, error)

	// Authenticate rejects revoked tokens before checking the signature,
	// so a logged-out token reads as "logged out" even after it expires.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)

	// Revoke ledgers the token until its embedded expiry. Tokens that
	// cannot be decoded are ledgered too, with a default lifetime.
	Revoke(ctx context.Context, token string) error
}

type tokenServiceImpl struct {
	manager *auth.TokenManager
	ledger  repositories.InvalidatedTokenRepository
	cache   *tokencache.Cache // optional fast path, may be nil
}

func NewTokenService(
	manager *auth.TokenManager,
	ledger repositories.InvalidatedTokenRepository,
	cache *tokencache.Cache,
) TokenService {
	return &tokenServiceImpl{
		manager: manager,
		ledger:  ledger,
		cache:   cache,
	}
}

func (s *tokenServiceImpl) Sign(accountID, email string) (string, error) {
	token, err := s.manager.Sign(accountID, email)
	if err != nil {
		return "", appErrors.InternalError(err)
	}
	return token, nil
}

func (s *tokenServiceImpl) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	revoked, err := s.isRevoked(ctx, token)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if revoked {
		return nil, appErrors.ErrTokenLoggedOut
	}

	claims, err := s.manager.Parse(token)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *tokenServiceImpl) Revoke(ctx context.Context, token string) error {
	expiresAt := s.manager.ExpiryOf(token)
	if err := s.ledger.Upsert(ctx, token, expiresAt); err != nil {
		return appErrors.InternalError(err)
	}
	if s.cache != nil {
		if err := s.cache.Add(ctx, token, expiresAt); err != nil {
			logger.WithError(err).Warn("failed to cache revoked token")
		}
	}
	return nil
}

// isRevoked consults the cache first and falls through to the ledger.
// A cache miss is not authoritative: entries written before a restart
// may be gone while the ledger row remains.
func (s *tokenServiceImpl) isRevoked(ctx context.Context, token string) (bool, error) {
	if s.cache != nil {
		found, err := s.cache.Contains(ctx, token)
		if err != nil {
			logger.WithError(err).Warn("revoked-token cache lookup failed")
		} else if found {
			return true, nil
		}
	}
	return s.ledger.Exists(ctx, token)
}
