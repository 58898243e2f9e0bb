package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/mercado-seguro-backend/internal/survey"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// StatsCacheKey holds the current statistics snapshot, suffixed by version
	StatsCacheKey = CacheKeyPrefix + "estadisticas"
	// StatsVersionKey is bumped on every write to the record store
	StatsVersionKey = StatsCacheKey + ":version"
	// DefaultStatsTTL bounds how long a snapshot can outlive a failed invalidation
	DefaultStatsTTL = 10 * time.Minute
)

// StatsCache keeps the last computed statistics snapshot in Redis.
// Snapshots are stored under the version current when their computation
// began, so a write racing a recomputation never leaves a stale entry
// visible. A nil *StatsCache is a valid cache that never hits.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsCache(rdb *redis.Client) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: DefaultStatsTTL}
}

// Version returns the current snapshot generation.
func (c *StatsCache) Version(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	v, err := c.rdb.Get(ctx, StatsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Get retrieves the snapshot stored for version.
func (c *StatsCache) Get(ctx context.Context, version int64) (survey.Snapshot, bool, error) {
	var snap survey.Snapshot
	if c == nil {
		return snap, false, nil
	}

	val, err := c.rdb.Get(ctx, snapshotKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snap, false, nil // Cache miss, not an error
	}
	if err != nil {
		return snap, false, err
	}

	if err := json.Unmarshal(val, &snap); err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

// Set stores snap for version.
func (c *StatsCache) Set(ctx context.Context, version int64, snap survey.Snapshot) error {
	if c == nil {
		return nil
	}
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey(version), jsonData, c.ttl).Err()
}

// Invalidate retires every stored snapshot.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Incr(ctx, StatsVersionKey).Err()
}

func snapshotKey(version int64) string {
	return StatsCacheKey + ":" + strconv.FormatInt(version, 10)
}
