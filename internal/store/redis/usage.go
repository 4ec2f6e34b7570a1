package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// FieldUnresolved counts lookups that produced no URL
const FieldUnresolved = "unresolved"

// IncrementUsage increments the resolution counter of a provider for one outcome
func (s *Store) IncrementUsage(ctx context.Context, provider, field string) error {
	if err := s.client.HIncrBy(ctx, UsageKey(provider), field, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats retrieves the resolution counters of the given providers
func (s *Store) GetUsageStats(ctx context.Context, providers []string) (map[string]map[string]int64, error) {
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(providers))
	for i, provider := range providers {
		cmds[i] = pipe.HGetAll(ctx, UsageKey(provider))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]map[string]int64, len(providers))
	for i, cmd := range cmds {
		values, err := cmd.Result()
		if err != nil {
			continue
		}
		counters := make(map[string]int64, len(values))
		for field, raw := range values {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				continue
			}
			counters[field] = n
		}
		stats[providers[i]] = counters
	}

	return stats, nil
}
