package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-runner/pathfinding"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	// default prefix for redis keys
	defaultPrefix = "maze-runner:path"

	// how long a computation may hold the key's lock
	lockExpiry = 10 * time.Second
)

// RedisPathCache stores shortest path results in Redis with a TTL.
// Concurrent misses on the same key are serialized with a redsync mutex so
// that a result is computed once.
type RedisPathCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
	logger i.Logger
}

var _ i.PathCache = &RedisPathCache{}

// NewRedisPathCache creates a cache on client whose entries expire after ttl.
func NewRedisPathCache(client *redis.Client, ttl time.Duration, logger i.Logger) *RedisPathCache {
	pool := goredis.NewPool(client)
	return &RedisPathCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    ttl,
		prefix: defaultPrefix,
		logger: logger,
	}
}

// Remember returns the cached result for key or computes and stores it.
func (c *RedisPathCache) Remember(
	ctx context.Context,
	key string,
	compute func(context.Context) (pathfinding.Result, error),
) (pathfinding.Result, error) {
	redisKey := c.prefix + ":" + key

	if res, ok := c.get(ctx, redisKey); ok {
		return res, nil
	}

	mutex := c.locker.NewMutex(redisKey+":lock", redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		c.logger.Warning(fmt.Sprintf("path cache lock %s: %v, computing without cache", key, err))
		return compute(ctx)
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			c.logger.Warning(fmt.Sprintf("path cache unlock %s: %v", key, err))
		}
	}()

	// Another holder of the lock may have filled the key.
	if res, ok := c.get(ctx, redisKey); ok {
		return res, nil
	}

	res, err := compute(ctx)
	if err != nil {
		return pathfinding.Result{}, err
	}

	data, err := json.Marshal(res)
	if err != nil {
		return res, nil
	}
	if err := c.client.Set(ctx, redisKey, data, c.ttl).Err(); err != nil {
		c.logger.Warning(fmt.Sprintf("path cache set %s: %v", key, err))
	}

	return res, nil
}

func (c *RedisPathCache) get(ctx context.Context, redisKey string) (pathfinding.Result, bool) {
	data, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warning(fmt.Sprintf("path cache get %s: %v", redisKey, err))
		}
		return pathfinding.Result{}, false
	}

	var res pathfinding.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warning(fmt.Sprintf("path cache entry %s is corrupt: %v", redisKey, err))
		return pathfinding.Result{}, false
	}

	c.logger.Debug(fmt.Sprintf("path cache hit %s", redisKey))
	return res, true
}
