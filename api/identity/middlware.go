package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextAccountClaims is the key used to store token claims in the Gin context.
	ContextAccountClaims = "accountClaims"
)

// Authoriz rejects requests without a valid Bearer token and stores the
// token's claims in the context.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Attach the claims to the request context for further use.
		c.Set(ContextAccountClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Authoriz.
func ClaimsFrom(c *gin.Context) (*i.TokenClaims, bool) {
	v, ok := c.Get(ContextAccountClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*i.TokenClaims)
	return claims, ok
}
