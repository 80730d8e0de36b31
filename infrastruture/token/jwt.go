package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const (
	claimAccountID = "sub"
	claimUsername  = "username"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongIssuer   = errors.New("token issued by another issuer")
	ErrSigningMethod = errors.New("unexpected signing method")
)

// JwtService signs and verifies HS256 tokens for runner accounts.
type JwtService struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

var _ i.Tokenizer = &JwtService{}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       time.Now,
	}
}

// Generate creates a JWT for the given claims.
func (s *JwtService) Generate(claims i.TokenClaims, ttl time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		"exp":          s.now().UTC().Add(ttl).Unix(),
		"iat":          s.now().UTC().Unix(),
		"iss":          s.issuer,
		claimAccountID: claims.AccountID.String(),
		claimUsername:  claims.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString(s.secretKey)
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (*i.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrWrongIssuer
	}

	rawID, _ := claims[claimAccountID].(string)
	accountID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	username, _ := claims[claimUsername].(string)
	result := &i.TokenClaims{AccountID: accountID, Username: username}
	if exp, ok := claims["exp"].(float64); ok {
		result.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return result, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrSigningMethod
	}
	return s.secretKey, nil
}
