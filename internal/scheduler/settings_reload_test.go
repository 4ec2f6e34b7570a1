package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

func newObservedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logger.NewWithCore(core), logs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "enableStashDB: true\ncustomEndpoints: https://stash.example.org/graphql\n")

	log, logs := newObservedLogger()
	holder := linker.NewHolder(settings.Defaults(time.Now()))
	sr := NewSettingsReloader(path, nil, holder, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := holder.Current().Snapshot().Source; got != settings.SourceFile {
		t.Errorf("source = %q, want %q", got, settings.SourceFile)
	}
	if holder.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", holder.Reloads())
	}
	if logs.FilterMessage("settings applied").Len() != 1 {
		t.Error("expected one 'settings applied' entry")
	}

	// Same content: nothing is swapped.
	if err := sr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if holder.Reloads() != 1 {
		t.Errorf("Reloads() = %d after unchanged reload, want 1", holder.Reloads())
	}
	if logs.FilterMessage("settings unchanged").Len() != 1 {
		t.Error("expected a 'settings unchanged' entry")
	}

	// Invalid content: the previous snapshot stays.
	writeFile(t, path, "defaultEndpoint: not-a-url\n")
	if err := sr.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail on invalid settings")
	}
	link, _ := holder.Current().Link("stashdb")
	if !link.Enabled() {
		t.Error("invalid settings must not replace the current snapshot")
	}
}

func TestReloadAfterRedisRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "enableFansDB: true\n")

	restored, err := settings.Build(settings.File{EnableFansDB: true}, settings.SourceRedis, time.Now())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	log, logs := newObservedLogger()
	holder := linker.NewHolder(restored)
	sr := NewSettingsReloader(path, nil, holder, log, time.Hour, make(chan struct{}, 1))

	if err := sr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := holder.Current().Snapshot().Source; got != settings.SourceFile {
		t.Errorf("source = %q, want %q", got, settings.SourceFile)
	}
	if logs.FilterMessage("settings match the current snapshot, not persisted").Len() != 1 {
		t.Error("identical restored settings should be adopted without persisting")
	}

	// Now sourced from the file: the next identical reload is a no-op.
	if err := sr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if holder.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", holder.Reloads())
	}
	if logs.FilterMessage("settings unchanged").Len() != 1 {
		t.Error("expected a 'settings unchanged' entry")
	}
}

func TestApplyReportsSkippedEndpoints(t *testing.T) {
	log, logs := newObservedLogger()
	holder := linker.NewHolder(settings.Defaults(time.Now()))

	snap, err := settings.Build(settings.File{
		CustomEndpoints: "https://stashdb.org/graphql, https://stash.example.org/graphql",
	}, settings.SourceRedis, time.Now())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	Apply(context.Background(), holder, nil, snap, log)

	warnings := logs.FilterMessage("custom endpoints ignored (invalid or duplicate)").All()
	if len(warnings) != 1 {
		t.Fatalf("expected one skipped-endpoints warning, got %d", len(warnings))
	}
	if holder.Current().Snapshot() != snap {
		t.Error("Apply() should publish the snapshot")
	}
}

func TestStart(t *testing.T) {
	t.Run("missing file keeps defaults", func(t *testing.T) {
		log, logs := newObservedLogger()
		holder := linker.NewHolder(settings.Defaults(time.Now()))
		sr := NewSettingsReloader(filepath.Join(t.TempDir(), "missing.yaml"), nil, holder, log, time.Hour, make(chan struct{}, 1))

		if err := sr.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer sr.Stop()

		if holder.Current().Snapshot().Source != settings.SourceDefaults {
			t.Error("defaults should still be served")
		}
		if logs.FilterMessage("settings file not found, serving current settings").Len() != 1 {
			t.Error("expected a missing-file warning")
		}
	})

	t.Run("invalid file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, "unknownKey: 1\n")

		sr := NewSettingsReloader(path, nil, linker.NewHolder(settings.Defaults(time.Now())), logger.Nop(), time.Hour, make(chan struct{}, 1))
		if err := sr.Start(context.Background()); err == nil {
			sr.Stop()
			t.Fatal("Start() should fail on an invalid settings file")
		}
	})

	t.Run("manual trigger reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		writeFile(t, path, "enableFansDB: true\n")

		trigger := make(chan struct{}, 1)
		holder := linker.NewHolder(settings.Defaults(time.Now()))
		sr := NewSettingsReloader(path, nil, holder, logger.Nop(), time.Hour, trigger)

		if err := sr.Start(context.Background()); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		defer sr.Stop()

		writeFile(t, path, "enableFansDB: false\nenableTPDB: true\n")
		trigger <- struct{}{}

		deadline := time.Now().Add(2 * time.Second)
		for holder.Reloads() < 2 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		if holder.Reloads() != 2 {
			t.Fatalf("Reloads() = %d, want 2", holder.Reloads())
		}
		link, _ := holder.Current().Link("tpdb")
		if !link.Enabled() {
			t.Error("tpdb should be enabled after the manual reload")
		}
	})
}

func TestSameSettings(t *testing.T) {
	now := time.Now()
	base := func(f settings.File) *settings.Snapshot {
		s, err := settings.Build(f, settings.SourceFile, now)
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return s
	}

	tests := []struct {
		name string
		a, b settings.File
		want bool
	}{
		{
			name: "identical",
			a:    settings.File{EnableStashDB: true},
			b:    settings.File{EnableStashDB: true},
			want: true,
		},
		{
			name: "flag differs",
			a:    settings.File{EnableStashDB: true},
			b:    settings.File{},
			want: false,
		},
		{
			name: "custom endpoints differ",
			a:    settings.File{CustomEndpoints: "https://a.example/graphql"},
			b:    settings.File{CustomEndpoints: "https://b.example/graphql"},
			want: false,
		},
		{
			name: "default endpoint differs",
			a:    settings.File{DefaultEndpoint: "https://fansdb.cc/graphql"},
			b:    settings.File{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameSettings(base(tt.a), base(tt.b)); got != tt.want {
				t.Errorf("SameSettings() = %v, want %v", got, tt.want)
			}
		})
	}
}
