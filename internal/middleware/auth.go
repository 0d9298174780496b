package middleware

import (
	"strings"

	"ehandout_backend/internal/appErrors"
	"ehandout_backend/internal/logger"
	"ehandout_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	// AccountIDKey is the gin context key carrying the authenticated
	// account id set by AuthMiddleware.
	AccountIDKey = "accountID"
	EmailKey     = "accountEmail"
	tokenKey     = "sessionToken"
)

// AuthMiddleware gates a route group behind a bearer token. A missing or
// malformed header answers 401; a ledgered, tampered or expired token
// answers 403, with the ledger checked first.
func AuthMiddleware(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			appErrors.HandleError(c, err)
			c.Abort()
			return
		}

		ctx := logger.WithAccountID(c.Request.Context(), claims.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(AccountIDKey, claims.ID)
		c.Set(EmailKey, claims.Email)
		c.Set(tokenKey, tokenStr)
		c.Next()
	}
}

// GetAccountID extracts the authenticated account id from the context.
func GetAccountID(c *gin.Context) string {
	id, exists := c.Get(AccountIDKey)
	if !exists {
		return ""
	}
	s, ok := id.(string)
	if !ok {
		return ""
	}
	return s
}

// GetSessionToken returns the raw bearer token the request carried.
func GetSessionToken(c *gin.Context) string {
	val, exists := c.Get(tokenKey)
	if !exists {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}
