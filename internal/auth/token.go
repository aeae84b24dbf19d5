// Package auth implements the authentication core: bcrypt password hashing
// and issuance/verification of signed, expiring bearer tokens.  Tokens are
// HS256 JWTs carrying only the subject (username), issued-at and expiry
// claims; they are never persisted server-side, so validity is decided
// entirely by the signature and expiry check at verification time.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the access token lifetime used when no override is configured.
const DefaultTTL = 30 * time.Minute

// Verification failures are reported as one of these sentinel errors so the
// middleware can distinguish them in logs; all of them surface as 401.
var (
	// ErrTokenMalformed is returned when the token cannot be parsed at all.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrBadSignature is returned when the signature does not match the
	// process-wide secret, including tokens signed with a different key or
	// tampered payloads.
	ErrBadSignature = errors.New("token signature invalid")
	// ErrTokenExpired is returned when the token parsed and verified but its
	// expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenService signs and verifies access tokens with a symmetric secret.
// The secret is set once at startup and treated as read-only afterward, so
// the service is safe for concurrent use without locking.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService.  A non-positive ttl falls back to
// DefaultTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given subject using the configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL signs a token for the given subject with an explicit
// lifetime.  A zero or negative ttl produces an already-expired token.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses the token, checks the HMAC signature and expiry, and
// returns the subject claim.  Failures map to ErrTokenMalformed,
// ErrBadSignature or ErrTokenExpired.
func (s *TokenService) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC before touching the secret.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return "", ErrBadSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
