package service

import (
	"context"
	"strings"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The only route from (0,0) to (2,2) runs up the west side and along the top.
const corridorMaze = `#######
#     #
# ### #
# # # #
# # ###
#     #
#######
`

// The wall follower circles the block in the middle and never reaches it.
const islandMaze = `#######
#     #
# ### #
# # # #
# ### #
#     #
#######
`

func mustParse(t *testing.T, s string) *maze.Maze {
	t.Helper()
	m, err := maze.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return m
}

func TestRunnerService_RunAnonymous(t *testing.T) {
	svc := NewRunnerService(logger.Discard(), nil)
	m := mustParse(t, corridorMaze)

	run, err := svc.Run(context.Background(), RunRequest{MazeName: "corridor.mz", Maze: m})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, uuid.Nil, run.AccountID)
	assert.Equal(t, maze.Position{X: 0, Y: 0}, run.Start)
	assert.Equal(t, maze.Position{X: 2, Y: 2}, run.Goal)
	assert.Equal(t, string(pathfinding.AStar), run.Algorithm)
	assert.Equal(t, m.Fingerprint(), run.MazeFingerprint)

	actions := make([]runner.Action, 0, len(run.Exploration))
	for _, s := range run.Exploration {
		actions = append(actions, s.Action)
	}
	assert.Equal(t, []runner.Action{runner.Forward, runner.Forward, runner.TurnRightForward, runner.Forward}, actions)
	assert.Equal(t, 4, run.ExplorationSteps)

	assert.True(t, run.PathFound)
	assert.Equal(t, []maze.Position{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}, run.Path)
	assert.Equal(t, 5, run.PathLength)
	assert.Equal(t, 6.0, run.Score)
}

func TestRunnerService_RunEndpoints(t *testing.T) {
	svc := NewRunnerService(logger.Discard(), nil)
	m := mustParse(t, corridorMaze)

	t.Run("start equals goal", func(t *testing.T) {
		p := maze.Position{X: 1, Y: 1}
		run, err := svc.Run(context.Background(), RunRequest{Maze: m, Start: &p, Goal: &p, Algorithm: pathfinding.BFS})
		require.NoError(t, err)
		assert.Empty(t, run.Exploration)
		assert.Equal(t, []maze.Position{p}, run.Path)
		assert.Equal(t, 1.0, run.Score)
	})

	t.Run("start outside the maze", func(t *testing.T) {
		p := maze.Position{X: 3, Y: 0}
		_, err := svc.Run(context.Background(), RunRequest{Maze: m, Start: &p})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("goal outside the maze", func(t *testing.T) {
		p := maze.Position{X: 0, Y: -1}
		_, err := svc.Run(context.Background(), RunRequest{Maze: m, Goal: &p})
		assert.ErrorIs(t, err, maze.ErrOutOfBounds)
	})

	t.Run("no maze", func(t *testing.T) {
		_, err := svc.Run(context.Background(), RunRequest{})
		assert.ErrorIs(t, err, maze.ErrEmptyMaze)
	})
}

func TestRunnerService_RunUnreachableGoal(t *testing.T) {
	runs := &fakeRunRepo{}
	svc := NewRunnerService(logger.Discard(), &RunnerOptions{Runs: runs})
	m := mustParse(t, islandMaze)
	goal := maze.Position{X: 1, Y: 1}

	run, err := svc.Run(context.Background(), RunRequest{Maze: m, Goal: &goal})
	require.ErrorIs(t, err, runner.ErrGoalUnreachable)
	require.NotNil(t, run)
	assert.NotEmpty(t, run.Exploration)
	assert.Equal(t, len(run.Exploration), run.ExplorationSteps)
	assert.Empty(t, runs.runs)
}

func TestRunnerService_RunRecordsAccountRun(t *testing.T) {
	account := &dmn.Account{ID: uuid.New(), Username: "wallhugger"}
	accounts := newFakeAccountRepo(account)
	runs := &fakeRunRepo{}
	cache := newFakePathCache()
	board := newFakeLeaderboard()

	svc := NewRunnerService(logger.Discard(), &RunnerOptions{
		Runs:        runs,
		Accounts:    accounts,
		Cache:       cache,
		Leaderboard: board,
	})
	fixed := time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	m := mustParse(t, corridorMaze)
	req := RunRequest{AccountID: account.ID, Username: account.Username, MazeName: "corridor.mz", Maze: m}

	first, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fixed, first.CreatedAt)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, 1, cache.computes)
	require.Len(t, runs.runs, 2)

	stored, err := accounts.ByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Runs)
	assert.Equal(t, 6.0, stored.BestScore)

	entries, total, err := svc.Leaderboard(context.Background(), m.Fingerprint(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, "wallhugger", entries[0].Member)
	assert.Equal(t, 6.0, entries[0].Score)
	assert.Equal(t, int64(1), entries[0].Rank)
}

func TestRunnerService_RunUnknownAccount(t *testing.T) {
	svc := NewRunnerService(logger.Discard(), &RunnerOptions{Accounts: newFakeAccountRepo()})

	_, err := svc.Run(context.Background(), RunRequest{AccountID: uuid.New(), Maze: mustParse(t, corridorMaze)})
	assert.ErrorIs(t, err, dmn.ErrAccountNotFound)
}

func TestRunnerService_History(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc := NewRunnerService(logger.Discard(), nil)

		_, err := svc.RunByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrHistoryDisabled)
		_, err = svc.RecentRuns(context.Background(), uuid.Nil, 5)
		assert.ErrorIs(t, err, ErrHistoryDisabled)
		_, _, err = svc.Leaderboard(context.Background(), "board", 5)
		assert.ErrorIs(t, err, ErrLeaderboardDisabled)
	})

	t.Run("lookups", func(t *testing.T) {
		runs := &fakeRunRepo{}
		svc := NewRunnerService(logger.Discard(), &RunnerOptions{Runs: runs})
		m := mustParse(t, corridorMaze)

		run, err := svc.Run(context.Background(), RunRequest{Maze: m})
		require.NoError(t, err)

		got, err := svc.RunByID(context.Background(), run.ID)
		require.NoError(t, err)
		assert.Equal(t, run.ID, got.ID)

		_, err = svc.RunByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, dmn.ErrRunNotFound)

		recent, err := svc.RecentRuns(context.Background(), uuid.Nil, 0)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Nil(t, recent[0].Exploration)
		assert.Equal(t, defaultRecentLimit, runs.lastLimit)

		_, err = svc.RecentRuns(context.Background(), uuid.Nil, 5000)
		require.NoError(t, err)
		assert.Equal(t, maxRecentLimit, runs.lastLimit)
	})
}

func TestRunnerService_Compare(t *testing.T) {
	svc := NewRunnerService(logger.Discard(), nil)
	m := mustParse(t, corridorMaze)

	results, err := svc.Compare(context.Background(), m, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, len(pathfinding.Algorithms))
	for idx, res := range results {
		assert.Equal(t, pathfinding.Algorithms[idx], res.Algorithm)
		assert.Equal(t, 5, res.Length())
	}

	results, err = svc.Compare(context.Background(), m, nil, nil, pathfinding.BFS)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, pathfinding.BFS, results[0].Algorithm)

	bad := maze.Position{X: 9, Y: 9}
	_, err = svc.Compare(context.Background(), m, &bad, nil)
	assert.ErrorIs(t, err, maze.ErrOutOfBounds)
}

func TestRunnerService_Generate(t *testing.T) {
	svc := NewRunnerService(logger.Discard(), nil)

	a, err := svc.Generate(6, 4, 42)
	require.NoError(t, err)
	b, err := svc.Generate(6, 4, 42)
	require.NoError(t, err)

	assert.Equal(t, 6, a.Width())
	assert.Equal(t, 4, a.Height())
	assert.Equal(t, a.String(), b.String())

	_, err = svc.Generate(0, 4, 1)
	assert.ErrorIs(t, err, maze.ErrInvalidDimensions)
}
