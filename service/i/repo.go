package i

import (
	"context"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/google/uuid"
)

// AccountRepo defines the interface for account persistence operations.
type AccountRepo interface {
	// Save inserts or updates an account.
	// Returns dmn.ErrUsernameConflict when another account holds the username.
	Save(ctx context.Context, account *dmn.Account) error

	// ByID retrieves an account by its unique ID.
	// Returns dmn.ErrAccountNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Account, error)

	// ByUsername retrieves an account by its username.
	// Returns dmn.ErrAccountNotFound if there is none.
	ByUsername(ctx context.Context, username string) (*dmn.Account, error)
}

// RunRepo stores finished runs.
type RunRepo interface {
	Save(ctx context.Context, run *dmn.Run) error

	// ByID returns dmn.ErrRunNotFound if there is no such run.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// Recent lists the newest runs first, without their exploration logs.
	// A zero accountID lists runs of every account.
	Recent(ctx context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error)
}
