package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SettingsKey(), "stashlink:settings:current"},
		{SettingsHistoryKey(), "stashlink:settings:history"},
		{UsageKey("stashdb"), "stashlink:usage:stashdb"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid",
			data: `{"default_endpoint":"https://fansdb.cc/graphql","custom_endpoints":["https://stash.example.org/graphql"],"flags":{"enableFansDB":true},"source":"file"}`,
		},
		{
			name:    "not json",
			data:    `{`,
			wantErr: true,
		},
		{
			name:    "invalid endpoint",
			data:    `{"default_endpoint":"fansdb"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := decodeSnapshot([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeSnapshot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !snap.Flags["enableFansDB"] {
				t.Errorf("flags not decoded: %+v", snap.Flags)
			}
		})
	}
}

// TestStoreAgainstRedis runs against a real server when STASHLINK_TEST_REDIS_ADDR is set.
func TestStoreAgainstRedis(t *testing.T) {
	addr := os.Getenv("STASHLINK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STASHLINK_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() {
		client.FlushDB(ctx)
		_ = client.Close()
	})
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("FlushDB() error = %v", err)
	}

	store := NewStore(client)

	missing, err := store.LoadSettings(ctx)
	if err != nil || missing != nil {
		t.Fatalf("LoadSettings() on empty db = %v, %v; want nil, nil", missing, err)
	}

	for _, endpoint := range []string{"https://fansdb.cc/graphql", "https://javstash.org/graphql"} {
		snap, err := settings.Build(settings.File{DefaultEndpoint: endpoint}, settings.SourceFile, time.Now())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if err := store.SaveSettings(ctx, snap); err != nil {
			t.Fatalf("SaveSettings() error = %v", err)
		}
	}

	current, err := store.LoadSettings(ctx)
	if err != nil || current.DefaultEndpoint != "https://javstash.org/graphql" {
		t.Fatalf("LoadSettings() = %+v, %v", current, err)
	}

	history, err := store.SettingsHistory(ctx, 0)
	if err != nil || len(history) != 2 || history[0].DefaultEndpoint != "https://javstash.org/graphql" {
		t.Fatalf("SettingsHistory() = %+v, %v", history, err)
	}

	for i := 0; i < 3; i++ {
		if err := store.IncrementUsage(ctx, "stashdb", "bare"); err != nil {
			t.Fatalf("IncrementUsage() error = %v", err)
		}
	}
	if err := store.IncrementUsage(ctx, "stashdb", FieldUnresolved); err != nil {
		t.Fatalf("IncrementUsage() error = %v", err)
	}

	stats, err := store.GetUsageStats(ctx, []string{"stashdb", "fansdb"})
	if err != nil {
		t.Fatalf("GetUsageStats() error = %v", err)
	}
	if stats["stashdb"]["bare"] != 3 || stats["stashdb"][FieldUnresolved] != 1 {
		t.Errorf("stashdb stats = %v", stats["stashdb"])
	}
	if len(stats["fansdb"]) != 0 {
		t.Errorf("fansdb stats = %v, want empty", stats["fansdb"])
	}
}
