package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/tasklist/internal/models"
)

func TestTokenIssuer(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("issued token verifies", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", DefaultTokenDuration)
		token, err := issuer.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if claims.UserID() != "user-1" || claims.Email != "alice@example.com" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 7*24*time.Hour {
			t.Errorf("token lifetime = %v, want 7 days", ttl)
		}
	})

	t.Run("token expires after ttl", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", time.Hour)
		start := time.Now()
		issuer.now = func() time.Time { return start }
		token, err := issuer.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		issuer.now = func() time.Time { return start.Add(59 * time.Minute) }
		if _, err := issuer.Verify(token); err != nil {
			t.Errorf("token rejected before expiry: %v", err)
		}

		issuer.now = func() time.Time { return start.Add(2 * time.Hour) }
		if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken after expiry, got %v", err)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := NewTokenIssuer("other-secret", time.Hour).Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := NewTokenIssuer("test-secret", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("other algorithms are rejected", func(t *testing.T) {
		claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("signing: %v", err)
		}
		if _, err := NewTokenIssuer("test-secret", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for HS512, got %v", err)
		}
	})

	t.Run("token without subject is rejected", func(t *testing.T) {
		token, err := NewTokenIssuer("test-secret", time.Hour).Issue(&models.User{})
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}
		if _, err := NewTokenIssuer("test-secret", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("malformed tokens", func(t *testing.T) {
		issuer := NewTokenIssuer("test-secret", time.Hour)
		token, _ := issuer.Issue(user)
		tampered := token[:strings.LastIndex(token, ".")+1] + "AAAA"

		if _, err := issuer.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("tampered: expected ErrInvalidToken, got %v", err)
		}
		if _, err := issuer.Verify("garbage"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("garbage: expected ErrInvalidToken, got %v", err)
		}
		if _, err := issuer.Verify(""); !errors.Is(err, ErrMissingToken) {
			t.Errorf("empty: expected ErrMissingToken, got %v", err)
		}
	})
}
