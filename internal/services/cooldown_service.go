package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownService throttles public report submission to one report per
// submitter per window, backed by Redis. With no Redis client configured it
// allows everything.
type CooldownService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCooldownService(rdb *redis.Client, ttl time.Duration) *CooldownService {
	return &CooldownService{rdb: rdb, ttl: ttl}
}

// Allow reports whether the submitter may file a report now. When refused,
// the remaining cooldown is returned.
func (s *CooldownService) Allow(ctx context.Context, contactEmail string) (bool, time.Duration, error) {
	if s.rdb == nil {
		return true, 0, nil
	}

	key := "civixa:report_cooldown:" + strings.ToLower(strings.TrimSpace(contactEmail))
	ok, err := s.rdb.SetNX(ctx, key, 1, s.ttl).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check report cooldown: %w", err)
	}
	if ok {
		return true, 0, nil
	}

	remaining, err := s.rdb.TTL(ctx, key).Result()
	if err != nil || remaining < 0 {
		remaining = s.ttl
	}
	return false, remaining, nil
}
