package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/redis/go-redis/v9"
)

// leaderboard key string format
const boardKeyFmt = "%s:leaderboard:%s"

// default prefix for redis key
const defaultPrefix = "maze-runner"

// RedisLeaderboard ranks members of a board in a Redis sorted set, lowest
// score first, with TTL support.
type RedisLeaderboard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ i.Leaderboard = &RedisLeaderboard{}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client and TTL.
// A zero ttl keeps boards forever.
func NewRedisLeaderboard(client *redis.Client, ttl time.Duration) *RedisLeaderboard {
	return &RedisLeaderboard{
		client: client,
		ttl:    ttl,
		prefix: defaultPrefix,
	}
}

// Submit records score for member, keeping the lower of the old and new scores.
func (rl *RedisLeaderboard) Submit(ctx context.Context, board, member string, score float64) error {
	key := rl.key(board)
	err := rl.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: score, Member: member}},
	}).Err()
	if err != nil {
		return fmt.Errorf("submitting to leaderboard %s: %w", board, err)
	}

	if rl.ttl <= 0 {
		return nil
	}

	// Set expiration only if it's not already set
	ttl, err := rl.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = rl.client.Expire(ctx, key, rl.ttl).Err()
	}

	return nil
}

// Top returns up to n best entries of board, ranked from 1.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return []i.LeaderboardEntry{}, nil
	}

	zs, err := rl.client.ZRangeWithScores(ctx, rl.key(board), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading leaderboard %s: %w", board, err)
	}

	entries := make([]i.LeaderboardEntry, 0, len(zs))
	for idx, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, i.LeaderboardEntry{
			Rank:   int64(idx) + 1,
			Member: member,
			Score:  z.Score,
		})
	}
	return entries, nil
}

// Count returns the number of members on board.
func (rl *RedisLeaderboard) Count(ctx context.Context, board string) (int64, error) {
	return rl.client.ZCard(ctx, rl.key(board)).Result()
}

func (rl *RedisLeaderboard) key(board string) string {
	return fmt.Sprintf(boardKeyFmt, rl.prefix, board)
}
