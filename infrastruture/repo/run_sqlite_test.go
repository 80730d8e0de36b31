package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteRunRepo {
	t.Helper()
	repo, err := NewSQLiteRunRepo(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleRun(accountID uuid.UUID, createdAt time.Time) *dmn.Run {
	return &dmn.Run{
		ID:              uuid.New(),
		AccountID:       accountID,
		MazeName:        "corridor.txt",
		MazeFingerprint: "abc123",
		Width:           3,
		Height:          3,
		Start:           maze.Position{X: 0, Y: 0},
		Goal:            maze.Position{X: 2, Y: 2},
		Algorithm:       "astar",
		Exploration: []runner.Step{
			{Number: 1, X: 0, Y: 0, Action: runner.Forward},
			{Number: 2, X: 0, Y: 1, Action: runner.TurnRightForward},
		},
		ExplorationSteps: 2,
		Path:             []maze.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
		PathLength:       3,
		PathFound:        true,
		Score:            3.5,
		CreatedAt:        createdAt,
	}
}

func TestSQLiteRunRepo_SaveAndByID(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	run := sampleRun(uuid.New(), time.Date(2025, 2, 8, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.ByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run, got)
}

func TestSQLiteRunRepo_SaveReplaces(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	run := sampleRun(uuid.Nil, time.Now().UTC())
	require.NoError(t, repo.Save(ctx, run))

	run.Score = 9
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.ByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, got.Score)
}

func TestSQLiteRunRepo_ByIDNotFound(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	_, err := repo.ByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dmn.ErrRunNotFound)
}

func TestSQLiteRunRepo_NoPathRun(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	run := sampleRun(uuid.Nil, time.Now().UTC())
	run.Path = nil
	run.PathLength = 0
	run.PathFound = false
	run.Exploration = nil
	require.NoError(t, repo.Save(ctx, run))

	got, err := repo.ByID(ctx, run.ID)
	require.NoError(t, err)
	assert.False(t, got.PathFound)
	assert.Empty(t, got.Path)
	assert.Empty(t, got.Exploration)
}

func TestSQLiteRunRepo_Recent(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2025, 2, 8, 10, 0, 0, 0, time.UTC)

	first := sampleRun(alice, base)
	second := sampleRun(bob, base.Add(time.Minute))
	third := sampleRun(alice, base.Add(2*time.Minute))
	for _, run := range []*dmn.Run{first, second, third} {
		require.NoError(t, repo.Save(ctx, run))
	}

	t.Run("every account newest first", func(t *testing.T) {
		runs, err := repo.Recent(ctx, uuid.Nil, 10)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, third.ID, runs[0].ID)
		assert.Equal(t, second.ID, runs[1].ID)
		assert.Equal(t, first.ID, runs[2].ID)
		for _, run := range runs {
			assert.Empty(t, run.Exploration)
			assert.Equal(t, 2, run.ExplorationSteps)
			assert.Len(t, run.Path, 3)
		}
	})

	t.Run("one account", func(t *testing.T) {
		runs, err := repo.Recent(ctx, alice, 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, third.ID, runs[0].ID)
		assert.Equal(t, first.ID, runs[1].ID)
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := repo.Recent(ctx, uuid.Nil, 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, third.ID, runs[0].ID)
	})
}
