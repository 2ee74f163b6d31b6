package ports

import "github.com/marketsquare/marketplace-api/internal/core/domain"

// PasswordHasher wraps an adaptive one-way hash. The hashed form embeds its
// own salt and cost, so no separate salt storage is needed.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hashed. Mismatch is not an
	// error condition.
	Verify(plaintext, hashed string) bool
}

// TokenCodec signs and verifies self-contained session tokens.
type TokenCodec interface {
	Issue(username, role string) (string, error)
	// Verify returns the embedded claims, or domain.ErrInvalidToken when the
	// signature is bad, the token is malformed, or it has expired.
	Verify(token string) (*domain.SessionClaims, error)
}
