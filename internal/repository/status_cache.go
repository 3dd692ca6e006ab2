package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/civixa/civixa-backend/internal/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const statusCacheTTL = 5 * time.Minute

// StatusCache caches the public per-location service listing in Redis.
// Cache failures degrade to the database; they are never surfaced to the
// request path.
type StatusCache struct {
	rdb *redis.Client
}

func NewStatusCache(rdb *redis.Client) services.StatusCache {
	return &StatusCache{rdb: rdb}
}

func cacheKey(locationID uuid.UUID) string {
	return "civixa:services:" + locationID.String()
}

func (c *StatusCache) GetServices(ctx context.Context, locationID uuid.UUID) ([]models.Service, bool) {
	if c.rdb == nil {
		return nil, false
	}

	val, err := c.rdb.Get(ctx, cacheKey(locationID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Error("status cache read failed", "location_id", locationID, "error", err)
		}
		return nil, false
	}

	var svcs []models.Service
	if err := json.Unmarshal(val, &svcs); err != nil {
		slog.Error("status cache unmarshal failed", "location_id", locationID, "error", err)
		return nil, false
	}
	return svcs, true
}

func (c *StatusCache) SetServices(ctx context.Context, locationID uuid.UUID, svcs []models.Service) {
	if c.rdb == nil {
		return
	}

	val, err := json.Marshal(svcs)
	if err != nil {
		slog.Error("status cache marshal failed", "location_id", locationID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(locationID), val, statusCacheTTL).Err(); err != nil {
		slog.Error("status cache write failed", "location_id", locationID, "error", err)
	}
}

func (c *StatusCache) Invalidate(ctx context.Context, locationID uuid.UUID) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, cacheKey(locationID)).Err(); err != nil {
		slog.Error("status cache invalidate failed", "location_id", locationID, "error", err)
	}
}
