package i

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims identifies the account a token was issued to.
type TokenClaims struct {
	AccountID uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// Tokenizer defines methods for generating and decoding tokens.
type Tokenizer interface {
	// Generate creates a token for the account valid for ttl.
	Generate(claims TokenClaims, ttl time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	Decode(token string) (*TokenClaims, error)
}
