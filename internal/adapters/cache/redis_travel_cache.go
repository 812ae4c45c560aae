package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/ports"
)

const travelKeyFormat = "travel_v1:%s"

// RedisTravelCache shares travel estimates across service instances. Entries
// carry a TTL so a routing-data refresh eventually propagates; stale reads
// are harmless since travel is a pure function of coordinates.
type RedisTravelCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTravelCache(client *redis.Client, ttl time.Duration) *RedisTravelCache {
	return &RedisTravelCache{client: client, ttl: ttl}
}

type travelEntry struct {
	DistanceMeters int `json:"distance_meters"`
	TravelMinutes  int `json:"travel_minutes"`
}

// Fetch cached estimates for many pair keys with a single MGET.
func (c *RedisTravelCache) GetMany(ctx context.Context, keys []string) (map[string]ports.TravelEstimate, error) {
	if c.client == nil {
		return nil, errors.New("travel cache: redis client is nil")
	}
	if len(keys) == 0 {
		return map[string]ports.TravelEstimate{}, nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = fmt.Sprintf(travelKeyFormat, k)
	}

	values, err := c.client.MGet(ctx, full...).Result()
	if err != nil {
		return nil, fmt.Errorf("get travel cache: mget: %w", err)
	}

	out := make(map[string]ports.TravelEstimate, len(keys))
	for i, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var e travelEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			// A corrupt entry is treated as a miss; it will be rewritten.
			continue
		}
		out[keys[i]] = ports.TravelEstimate{
			DistanceMeters: e.DistanceMeters,
			TravelMinutes:  e.TravelMinutes,
		}
	}

	return out, nil
}

// Store many estimates in one pipeline.
func (c *RedisTravelCache) PutMany(ctx context.Context, entries map[string]ports.TravelEstimate) error {
	if c.client == nil {
		return errors.New("travel cache: redis client is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for key, est := range entries {
		data, err := json.Marshal(travelEntry{
			DistanceMeters: est.DistanceMeters,
			TravelMinutes:  est.TravelMinutes,
		})
		if err != nil {
			return fmt.Errorf("insert travel cache key=%q: marshal: %w", key, err)
		}
		pipe.Set(ctx, fmt.Sprintf(travelKeyFormat, key), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert travel cache: pipeline exec: %w", err)
	}

	return nil
}
