package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/hicham722/taskflow/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyTasks      = "taskflow:tasks:" // + owner ("" = unfiltered listing)
	keyAdminStats = "taskflow:adminstats"
)

// TaskCache caches per-owner task listings and the admin aggregate view in
// Redis. Every write invalidates the owner's listing, the unfiltered
// listing, and the admin view.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached listing for userID, or nil if miss.
func (c *TaskCache) GetList(ctx context.Context, userID string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, keyTasks+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the listing for userID.
func (c *TaskCache) SetList(ctx context.Context, userID string, list []dom.Task) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyTasks+userID, b, c.ttl).Err()
}

// GetAdminStats returns the cached admin aggregates, or nil if miss.
func (c *TaskCache) GetAdminStats(ctx context.Context) ([]dom.UserStat, error) {
	b, err := c.rdb.Get(ctx, keyAdminStats).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.UserStat
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetAdminStats stores the admin aggregates.
func (c *TaskCache) SetAdminStats(ctx context.Context, list []dom.UserStat) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyAdminStats, b, c.ttl).Err()
}

// Invalidate removes the owner's listing, the unfiltered listing, and the
// admin aggregates (cache invalidation on write).
func (c *TaskCache) Invalidate(ctx context.Context, userID string) error {
	keys := []string{keyTasks, keyAdminStats}
	if userID != "" {
		keys = append(keys, keyTasks+userID)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// InvalidateAdminStats removes only the admin aggregates (e.g. after a
// user sync refreshes last_login).
func (c *TaskCache) InvalidateAdminStats(ctx context.Context) error {
	return c.rdb.Del(ctx, keyAdminStats).Err()
}
