package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/tasklist/internal/auth"
	"github.com/mmynk/tasklist/internal/models"
	"github.com/mmynk/tasklist/internal/service"
)

const (
	// UserKey is the gin context key for the authenticated *models.User.
	UserKey = "user"
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
)

// TokenAuthenticator resolves a bearer token to a user.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// GetUser extracts the authenticated user from the gin context.
func GetUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>" header.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth returns a middleware that validates bearer tokens and aborts
// with 401 before the handler runs when the token is missing or invalid.
// On success the user is stored under UserKey and UserIDKey.
func RequireAuth(authenticator TokenAuthenticator, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		token, err := ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			msg := "Token is not valid"
			if errors.Is(err, auth.ErrMissingToken) {
				msg = "No token, authorization denied"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthorized) {
				logger.Error("Token resolution failed", "path", c.Request.URL.Path, "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(UserKey, user)
		c.Set(UserIDKey, user.ID)
		c.Next()
	}
}
