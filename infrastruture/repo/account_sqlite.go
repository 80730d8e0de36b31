package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const accountSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	best_score REAL NOT NULL,
	runs INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)
`

// SQLiteAccountRepo keeps runner accounts in a local SQLite file, for
// servers that run without MongoDB.
type SQLiteAccountRepo struct {
	db *sql.DB
}

var _ i.AccountRepo = &SQLiteAccountRepo{}

// NewSQLiteAccountRepo opens (creating if needed) the database at path.
func NewSQLiteAccountRepo(path string) (*SQLiteAccountRepo, error) {
	db, err := openSQLite(path, accountSchema)
	if err != nil {
		return nil, fmt.Errorf("account store: %w", err)
	}
	return &SQLiteAccountRepo{db: db}, nil
}

// Close releases the database.
func (a *SQLiteAccountRepo) Close() error {
	return a.db.Close()
}

// Save inserts or updates an account. The creation time of an existing
// account is kept.
func (a *SQLiteAccountRepo) Save(ctx context.Context, account *dmn.Account) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash, best_score, runs, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password_hash = excluded.password_hash,
			best_score = excluded.best_score,
			runs = excluded.runs,
			updated_at = excluded.updated_at`,
		account.ID.String(), account.Username, account.PasswordHash, account.BestScore, account.Runs,
		account.CreatedAt.UTC().UnixNano(), time.Now().UTC().UnixNano(),
	)
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return dmn.ErrUsernameConflict
		}
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

// ByID retrieves an account by its ID.
func (a *SQLiteAccountRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Account, error) {
	return a.findOne(ctx, "id = ?", id.String())
}

// ByUsername retrieves an account by its username.
func (a *SQLiteAccountRepo) ByUsername(ctx context.Context, username string) (*dmn.Account, error) {
	return a.findOne(ctx, "username = ?", username)
}

func (a *SQLiteAccountRepo) findOne(ctx context.Context, where string, arg any) (*dmn.Account, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, best_score, runs, created_at
		FROM accounts WHERE `+where, arg)

	var (
		rawID     string
		createdAt int64
		account   dmn.Account
	)
	err := row.Scan(&rawID, &account.Username, &account.PasswordHash, &account.BestScore, &account.Runs, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dmn.ErrAccountNotFound
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}

	if account.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("loading account: bad id %q: %w", rawID, err)
	}
	account.CreatedAt = time.Unix(0, createdAt).UTC()

	return &account, nil
}
