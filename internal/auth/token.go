package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the minimum signing-key length in bytes. HS256 keys
// shorter than the hash output weaken the signature.
const MinSecretLen = 32

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature,
// expiry, or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// TokenProvider issues and verifies HMAC-SHA256 signed bearer tokens.
// Tokens are stateless; expiry is the only termination.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenProvider validates the secret and constructs a provider.
// A zero or negative ttl falls back to DefaultTokenTTL.
func NewTokenProvider(secret string, ttl time.Duration) (*TokenProvider, error) {
	if len(secret) < MinSecretLen {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenProvider{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (p *TokenProvider) TTL() time.Duration {
	return p.ttl
}

// Issue signs a token carrying the subject with issued-at and expiry
// claims.
func (p *TokenProvider) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Subject parses and validates a token, returning its subject.
func (p *TokenProvider) Subject(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Verify reports whether the token passes signature and expiry checks.
func (p *TokenProvider) Verify(tokenString string) bool {
	_, err := p.Subject(tokenString)
	return err == nil
}
