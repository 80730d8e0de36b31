package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-runner/domain"
)

// Authenticator registers runner accounts and signs them in.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*dmn.Account, error)
	SignIn(ctx context.Context, username, password string) (*dmn.Account, string, error)
}
