package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/maze"
	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/report"
	"github.com/beka-birhanu/maze-runner/runner"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
	defaultBoardSize   = 10
	maxBoardSize       = 100
)

var (
	ErrHistoryDisabled     = errors.New("run history is not configured")
	ErrLeaderboardDisabled = errors.New("leaderboard is not configured")
)

// RunnerOptions holds the optional collaborators of a RunnerService. Any of
// them may be nil; the matching feature is then skipped.
type RunnerOptions struct {
	// Runs persists finished runs.
	Runs i.RunRepo

	// Accounts receives each account's run count and best score.
	Accounts i.AccountRepo

	// Cache memoizes shortest paths by maze fingerprint.
	Cache i.PathCache

	// Leaderboard ranks account runs per maze fingerprint.
	Leaderboard i.Leaderboard
}

// RunRequest describes one run on a maze.
type RunRequest struct {
	AccountID uuid.UUID // uuid.Nil for anonymous runs
	Username  string
	MazeName  string
	Maze      *maze.Maze
	Start     *maze.Position // defaults to (0, 0)
	Goal      *maze.Position // defaults to the north-east cell
	Algorithm pathfinding.Algorithm
}

// RunnerService explores mazes, computes their shortest paths and keeps the
// resulting runs.
type RunnerService struct {
	logger i.Logger
	opts   RunnerOptions
	now    func() time.Time
}

// NewRunnerService creates a RunnerService. opts may be nil.
func NewRunnerService(logger i.Logger, opts *RunnerOptions) *RunnerService {
	s := &RunnerService{
		logger: logger,
		now:    time.Now,
	}
	if opts != nil {
		s.opts = *opts
	}
	return s
}

// Run explores req.Maze from the start with the left-hand rule, computes the
// shortest path between start and goal and scores the run. When exploration
// fails the partial exploration log is still returned in the run.
func (s *RunnerService) Run(ctx context.Context, req RunRequest) (*dmn.Run, error) {
	if req.Maze == nil {
		return nil, fmt.Errorf("%w: no maze", maze.ErrEmptyMaze)
	}

	start, goal, err := endpoints(req.Maze, req.Start, req.Goal)
	if err != nil {
		return nil, err
	}

	algo := req.Algorithm
	if algo == "" {
		algo = pathfinding.DefaultAlgorithm
	}

	run := &dmn.Run{
		ID:              uuid.New(),
		AccountID:       req.AccountID,
		MazeName:        req.MazeName,
		MazeFingerprint: req.Maze.Fingerprint(),
		Width:           req.Maze.Width(),
		Height:          req.Maze.Height(),
		Start:           start,
		Goal:            goal,
		Algorithm:       string(algo),
		CreatedAt:       s.now().UTC(),
	}

	steps, err := runner.Explore(ctx, req.Maze, runner.New(start.X, start.Y, maze.North), goal)
	run.Exploration = steps
	run.ExplorationSteps = len(steps)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("Exploration of %s stopped after %d steps: %v", run.MazeName, len(steps), err))
		return run, err
	}
	s.logger.Debug(fmt.Sprintf("Explored %s from %s to %s in %d steps", run.MazeName, start, goal, len(steps)))

	res, err := s.shortestPath(ctx, req.Maze, run.MazeFingerprint, algo, start, goal)
	switch {
	case err == nil:
		run.Path = res.Path
		run.PathLength = res.Length()
		run.PathFound = true
	case errors.Is(err, pathfinding.ErrNoPath):
		run.Path = []maze.Position{}
	default:
		return run, err
	}

	run.Score = report.Score(run.ExplorationSteps, run.PathLength)

	if err := s.record(ctx, run, req.Username); err != nil {
		return run, err
	}

	s.logger.Info(fmt.Sprintf("Run finished: ID=%s Maze=%s Steps=%d PathLength=%d Score=%s",
		run.ID, run.MazeName, run.ExplorationSteps, run.PathLength, report.FormatScore(run.Score)))
	return run, nil
}

// Compare runs every requested algorithm (all of them when none is given)
// between the endpoints of m.
func (s *RunnerService) Compare(ctx context.Context, m *maze.Maze, start, goal *maze.Position, algos ...pathfinding.Algorithm) ([]pathfinding.Result, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: no maze", maze.ErrEmptyMaze)
	}

	from, to, err := endpoints(m, start, goal)
	if err != nil {
		return nil, err
	}

	return pathfinding.Compare(ctx, m, from, to, algos...)
}

// Generate builds a perfect width x height maze from seed.
func (s *RunnerService) Generate(width, height int, seed int64) (*maze.Maze, error) {
	m, err := maze.Generate(width, height, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	s.logger.Debug(fmt.Sprintf("Generated %dx%d maze with seed %d", width, height, seed))
	return m, nil
}

// RunByID returns a stored run.
func (s *RunnerService) RunByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	if s.opts.Runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.opts.Runs.ByID(ctx, id)
}

// RecentRuns lists the newest runs of accountID, or of everyone when it is
// uuid.Nil. limit is clamped to [1, 100]; zero means 20.
func (s *RunnerService) RecentRuns(ctx context.Context, accountID uuid.UUID, limit int) ([]*dmn.Run, error) {
	if s.opts.Runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.opts.Runs.Recent(ctx, accountID, clamp(limit, defaultRecentLimit, maxRecentLimit))
}

// Leaderboard returns the best n entries of the board of a maze fingerprint
// together with the number of members on it. n is clamped to [1, 100]; zero means 10.
func (s *RunnerService) Leaderboard(ctx context.Context, board string, n int) ([]i.LeaderboardEntry, int64, error) {
	if s.opts.Leaderboard == nil {
		return nil, 0, ErrLeaderboardDisabled
	}

	entries, err := s.opts.Leaderboard.Top(ctx, board, int64(clamp(n, defaultBoardSize, maxBoardSize)))
	if err != nil {
		return nil, 0, err
	}
	total, err := s.opts.Leaderboard.Count(ctx, board)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *RunnerService) shortestPath(
	ctx context.Context,
	m *maze.Maze,
	fingerprint string,
	algo pathfinding.Algorithm,
	start, goal maze.Position,
) (pathfinding.Result, error) {
	compute := func(ctx context.Context) (pathfinding.Result, error) {
		return pathfinding.Search(ctx, m, algo, start, goal)
	}
	if s.opts.Cache == nil {
		return compute(ctx)
	}

	key := fmt.Sprintf("%s:%s:%d,%d:%d,%d", fingerprint, algo, start.X, start.Y, goal.X, goal.Y)
	return s.opts.Cache.Remember(ctx, key, compute)
}

// record persists the run and credits it to its account.
func (s *RunnerService) record(ctx context.Context, run *dmn.Run, username string) error {
	if s.opts.Runs != nil {
		if err := s.opts.Runs.Save(ctx, run); err != nil {
			s.logger.Error(fmt.Sprintf("Failed to save run %s: %v", run.ID, err))
			return err
		}
	}

	if run.AccountID == uuid.Nil {
		return nil
	}

	if s.opts.Accounts != nil {
		account, err := s.opts.Accounts.ByID(ctx, run.AccountID)
		if err != nil {
			s.logger.Error(fmt.Sprintf("Failed to load account %s: %v", run.AccountID, err))
			return err
		}
		account.RecordRun(run.Score)
		if err := s.opts.Accounts.Save(ctx, account); err != nil {
			s.logger.Error(fmt.Sprintf("Failed to update account %s: %v", run.AccountID, err))
			return err
		}
	}

	if s.opts.Leaderboard != nil && run.PathFound {
		member := username
		if member == "" {
			member = run.AccountID.String()
		}
		if err := s.opts.Leaderboard.Submit(ctx, run.MazeFingerprint, member, run.Score); err != nil {
			s.logger.Warning(fmt.Sprintf("Failed to submit run %s to leaderboard: %v", run.ID, err))
		}
	}

	return nil
}

// endpoints resolves the default start and goal of m and checks both are cells of m.
func endpoints(m *maze.Maze, start, goal *maze.Position) (maze.Position, maze.Position, error) {
	from := maze.Position{X: 0, Y: 0}
	if start != nil {
		from = *start
	}
	to := m.Goal()
	if goal != nil {
		to = *goal
	}

	if err := m.CheckPosition(from); err != nil {
		return from, to, fmt.Errorf("starting position: %w", err)
	}
	if err := m.CheckPosition(to); err != nil {
		return from, to, fmt.Errorf("goal position: %w", err)
	}
	return from, to, nil
}

func clamp(v, fallback, limit int) int {
	if v <= 0 {
		return fallback
	}
	if v > limit {
		return limit
	}
	return v
}
