package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.registerAccount)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/auth/me", c.me)
}

// registerAccount handles account registration.
func (c *IdentityServer) registerAccount(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := c.authService.Register(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, toAccountResponse(account))
}

// login handles account login.
func (c *IdentityServer) login(ctx *gin.Context) {
	var request AuthRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, token, err := c.authService.SignIn(ctx.Request.Context(), request.Username, request.Password)
	if err != nil {
		ctx.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &AuthResponse{
		AccountResponse: toAccountResponse(account),
		Token:           token,
	})
}

// me echoes the claims of the caller's token.
func (c *IdentityServer) me(ctx *gin.Context) {
	claims, ok := ClaimsFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "missing token claims"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         claims.AccountID.String(),
		"username":   claims.Username,
		"expires_at": claims.ExpiresAt,
	})
}

func toAccountResponse(a *dmn.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Username:  a.Username,
		BestScore: a.BestScore,
		Runs:      a.Runs,
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dmn.ErrUsernameTooShort),
		errors.Is(err, dmn.ErrUsernameTooLong),
		errors.Is(err, dmn.ErrInvalidUsername),
		errors.Is(err, dmn.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, dmn.ErrUsernameConflict):
		return http.StatusConflict
	case errors.Is(err, dmn.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
