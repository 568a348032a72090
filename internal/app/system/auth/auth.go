// Package auth issues and verifies the signed bearer tokens that gate
// every mutating route. Tokens are HS256 JWTs carrying the admin's
// identity and expire after the configured TTL; there is no refresh —
// clients log in again after expiry.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const issuer = "clubhub"

var (
	// ErrNoToken means the request carried no bearer token at all.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken covers malformed, tampered, and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Identity is the verified admin identity attached to the request context.
type Identity struct {
	AdminID  string
	Username string
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies admin bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	log    *zap.Logger
}

// NewTokens builds a token issuer/verifier. A TTL of zero falls back to
// one hour.
func NewTokens(secret string, ttl time.Duration, logger *zap.Logger) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty; provide >=32 random chars")
	}
	if len(secret) < 32 {
		logger.Warn("jwt secret is short; 32+ chars recommended",
			zap.Int("length", len(secret)))
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, log: logger}, nil
}

// TTL returns the configured token lifetime.
func (t *Tokens) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token for the given admin, valid for the configured TTL.
func (t *Tokens) Issue(adminID, username string) (string, error) {
	now := time.Now()
	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
}

// Verify parses and validates a token string and returns the identity it
// carries.
func (t *Tokens) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrNoToken
	}

	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	return Identity{AdminID: c.Subject, Username: c.Username}, nil
}

type ctxKey string

const identityKey ctxKey = "adminIdentity"

// CurrentAdmin returns the verified identity set by RequireAdmin.
func CurrentAdmin(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity injects an identity into the request context. Exposed for
// handler tests that bypass the middleware.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// RequireAdmin rejects requests without a valid bearer token.
// A missing token is 403 and an invalid or expired one is 401, so the
// admin console can distinguish "log in first" from "session expired".
func (t *Tokens) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeMessage(w, http.StatusForbidden, "No token provided")
			return
		}

		id, err := t.Verify(raw)
		if err != nil {
			t.log.Info("rejected bearer token", zap.Error(err))
			writeMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, WithIdentity(r, id))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
