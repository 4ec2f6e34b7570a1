package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultHistoryLength is the number of settings snapshots kept in history
	DefaultHistoryLength = 20
)

// Store handles Redis operations for settings snapshots and usage counters.
// It never stores resolved URLs.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
