package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

// SaveSettings stores snap as the current settings and appends it to the history
func (s *Store) SaveSettings(ctx context.Context, snap *settings.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SettingsKey(), data, 0)
	pipe.LPush(ctx, SettingsHistoryKey(), data)
	pipe.LTrim(ctx, SettingsHistoryKey(), 0, DefaultHistoryLength-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}

// LoadSettings retrieves the last applied settings.
// Returns (nil, nil) when nothing was stored yet.
func (s *Store) LoadSettings(ctx context.Context) (*settings.Snapshot, error) {
	data, err := s.client.Get(ctx, SettingsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return decodeSnapshot(data)
}

// SettingsHistory returns up to limit previously applied snapshots, newest first
func (s *Store) SettingsHistory(ctx context.Context, limit int64) ([]*settings.Snapshot, error) {
	if limit <= 0 {
		limit = DefaultHistoryLength
	}

	items, err := s.client.LRange(ctx, SettingsHistoryKey(), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings history: %w", err)
	}

	snaps := make([]*settings.Snapshot, 0, len(items))
	for _, item := range items {
		snap, err := decodeSnapshot([]byte(item))
		if err != nil {
			// Skip entries written by an incompatible version
			continue
		}
		snaps = append(snaps, snap)
	}

	return snaps, nil
}

func decodeSnapshot(data []byte) (*settings.Snapshot, error) {
	var snap settings.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
