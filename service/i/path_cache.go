package i

import (
	"context"

	"github.com/beka-birhanu/maze-runner/pathfinding"
)

// PathCache memoizes shortest path results.
type PathCache interface {
	// Remember returns the cached result for key, or calls compute, stores its
	// result and returns it. Errors from compute are returned and not cached.
	Remember(ctx context.Context, key string, compute func(context.Context) (pathfinding.Result, error)) (pathfinding.Result, error)
}

// Leaderboard ranks runs per maze; lower scores rank higher.
type Leaderboard interface {
	// Submit records score for member, keeping the member's best score.
	Submit(ctx context.Context, board, member string, score float64) error

	// Top returns the best n entries of board.
	Top(ctx context.Context, board string, n int64) ([]LeaderboardEntry, error)

	// Count returns the number of members on board.
	Count(ctx context.Context, board string) (int64, error)
}

// LeaderboardEntry is one ranked member of a leaderboard.
type LeaderboardEntry struct {
	Rank   int64   `json:"rank"`
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}
