package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

// Auth registers runner accounts and issues their tokens.
type Auth struct {
	accountRepo i.AccountRepo
	tokenizer   i.Tokenizer
	tokenTTL    time.Duration
	logger      i.Logger
}

var _ i.Authenticator = &Auth{}

// NewAuth creates an Auth service issuing tokens valid for tokenTTL.
func NewAuth(accountRepo i.AccountRepo, tokenizer i.Tokenizer, tokenTTL time.Duration, logger i.Logger) *Auth {
	return &Auth{
		accountRepo: accountRepo,
		tokenizer:   tokenizer,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Register creates a new account. Usernames are unique.
func (a *Auth) Register(ctx context.Context, username, password string) (*dmn.Account, error) {
	_, err := a.accountRepo.ByUsername(ctx, username)
	if err == nil {
		return nil, dmn.ErrUsernameConflict
	}
	if !errors.Is(err, dmn.ErrAccountNotFound) {
		return nil, err
	}

	account, err := dmn.NewAccount(dmn.AccountConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return nil, err
	}

	if err := a.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Account registered: ID=%s Username=%s", account.ID, account.Username))
	return account, nil
}

// SignIn checks the credentials and returns the account with a fresh token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.Account, string, error) {
	account, err := a.accountRepo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dmn.ErrAccountNotFound) {
			return nil, "", dmn.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !account.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(i.TokenClaims{
		AccountID: account.ID,
		Username:  account.Username,
	}, a.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	return account, token, nil
}
