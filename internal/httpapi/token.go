package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Black-And-White-Club/guildkeeper/internal/observability/attr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// TokenAuthenticator issues and checks the HS256 service tokens accepted on
// mutating routes.
type TokenAuthenticator struct {
	secret []byte
}

// NewTokenAuthenticator creates an authenticator. An empty secret yields a
// nil authenticator, which lets every request through.
func NewTokenAuthenticator(secret string) *TokenAuthenticator {
	if secret == "" {
		return nil
	}
	return &TokenAuthenticator{secret: []byte(secret)}
}

// IssueToken signs a token for subject valid for ttl.
func (a *TokenAuthenticator) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature and expiry and returns the subject.
func (a *TokenAuthenticator) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return "", ErrInvalidSignature
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// RequireBearer rejects requests without a valid bearer token. A nil
// authenticator disables the check.
func (a *TokenAuthenticator) RequireBearer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if a == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			subject, err := a.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "Rejected bearer token",
					attr.ExtractCorrelationID(r.Context()),
					attr.String("path", r.URL.Path),
					attr.Error(err),
				)
				WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			logger.DebugContext(r.Context(), "Authenticated request",
				attr.ExtractCorrelationID(r.Context()),
				attr.String("subject", subject),
			)
			next.ServeHTTP(w, r)
		})
	}
}
