package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountRepo(t *testing.T) *SQLiteAccountRepo {
	t.Helper()
	repo, err := NewSQLiteAccountRepo(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleAccount(username string) *dmn.Account {
	return &dmn.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    time.Date(2025, 2, 8, 10, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteAccountRepo_SaveAndFind(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	account := sampleAccount("runner_one")
	require.NoError(t, repo.Save(ctx, account))

	byID, err := repo.ByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account, byID)

	byName, err := repo.ByUsername(ctx, "runner_one")
	require.NoError(t, err)
	assert.Equal(t, account, byName)
}

func TestSQLiteAccountRepo_SaveUpdates(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	account := sampleAccount("runner_one")
	require.NoError(t, repo.Save(ctx, account))

	account.RecordRun(6)
	account.RecordRun(4.5)
	require.NoError(t, repo.Save(ctx, account))

	got, err := repo.ByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Runs)
	assert.Equal(t, 4.5, got.BestScore)
	assert.Equal(t, account.CreatedAt, got.CreatedAt)
}

func TestSQLiteAccountRepo_UsernameConflict(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleAccount("runner_one")))
	err := repo.Save(ctx, sampleAccount("runner_one"))
	assert.ErrorIs(t, err, dmn.ErrUsernameConflict)
}

func TestSQLiteAccountRepo_NotFound(t *testing.T) {
	repo := newTestAccountRepo(t)
	ctx := context.Background()

	_, err := repo.ByID(ctx, uuid.New())
	assert.ErrorIs(t, err, dmn.ErrAccountNotFound)

	_, err = repo.ByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, dmn.ErrAccountNotFound)
}

func TestSQLiteStoresShareAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze-runner.db")
	ctx := context.Background()

	accounts, err := NewSQLiteAccountRepo(path)
	require.NoError(t, err)
	defer accounts.Close()
	runs, err := NewSQLiteRunRepo(path)
	require.NoError(t, err)
	defer runs.Close()

	account := sampleAccount("runner_one")
	require.NoError(t, accounts.Save(ctx, account))
	run := sampleRun(account.ID, time.Now().UTC())
	require.NoError(t, runs.Save(ctx, run))

	listed, err := runs.Recent(ctx, account.ID, 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, run.ID, listed[0].ID)
}
