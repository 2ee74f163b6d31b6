// Package token implements the session token codec on top of HS256 JWTs.
// Tokens are self-contained: claims, expiry, and signature travel together,
// so verification is stateless.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

const defaultTTL = time.Hour

// Claims is the JWT payload for a session.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies session tokens with a process-wide secret.
// The secret is injected configuration; compromising it forges arbitrary
// identities, so it is a deployment responsibility.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTCodec builds a codec with the given lifetime. A zero ttl falls back
// to one hour; a negative ttl issues already-expired tokens, which tests use
// to exercise expiry handling.
func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &JWTCodec{secret: []byte(secret), ttl: ttl}
}

func (c *JWTCodec) Issue(username, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify parses and validates a token. Bad signature, malformed structure,
// wrong algorithm, and expiry all collapse into domain.ErrInvalidToken.
func (c *JWTCodec) Verify(token string) (*domain.SessionClaims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	session := &domain.SessionClaims{
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
