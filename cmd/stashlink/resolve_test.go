package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

func enabledLinker(t *testing.T) *linker.Linker {
	t.Helper()
	snap, err := settings.Build(settings.File{EnableStashDB: true, EnablePMVStash: true}, settings.SourceFile, time.Now())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return linker.New(snap)
}

func TestRunResolve(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		kind     domain.EntityKind
		raw      string
		want     string
		wantErr  error
	}{
		{
			name:     "endpoint prefixed",
			provider: "stashdb",
			kind:     domain.KindMovie,
			raw:      "https://stashdb.org/graphql|abc-123",
			want:     "https://stashdb.org/scenes/abc-123\n",
		},
		{
			name:     "provider key casing",
			provider: "StashDB",
			kind:     domain.KindMovie,
			raw:      "abc",
			want:     "https://stashdb.org/scenes/abc\n",
		},
		{
			name:     "disabled provider",
			provider: "fansdb",
			kind:     domain.KindMovie,
			raw:      "https://fansdb.cc/scenes/xyz",
			wantErr:  errNoLink,
		},
		{
			name:     "kind not modeled",
			provider: "pmvstash",
			kind:     domain.KindPerson,
			raw:      "p1",
			wantErr:  errNoLink,
		},
	}

	l := enabledLinker(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runResolve(&out, l, tt.provider, tt.kind, tt.raw, false)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runResolve() error = %v, want %v", err, tt.wantErr)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunResolveUnknownProvider(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, enabledLinker(t), "imdb", domain.KindMovie, "tt1", false); err == nil {
		t.Error("runResolve() should reject unknown providers")
	}
}

func TestRunResolveExplain(t *testing.T) {
	var out bytes.Buffer
	if err := runResolve(&out, enabledLinker(t), "stashdb", domain.KindMovie, "StashDB;abc", true); err != nil {
		t.Fatalf("runResolve() error = %v", err)
	}
	for _, want := range []string{"label_prefixed(StashDB, abc)", "enabled:    true", "https://stashdb.org/scenes/abc"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestResolveCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("enableTPDB: true\n"), 0o600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"resolve", "--settings", path, "--kind", "collection", "tpdb", "TPDB;42"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "https://theporndb.net/scenes/42\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLoadSnapshotMissingFileUsesDefaults(t *testing.T) {
	snap, err := loadSnapshot(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("loadSnapshot() error = %v", err)
	}
	if snap.Source != settings.SourceDefaults {
		t.Errorf("Source = %q, want %q", snap.Source, settings.SourceDefaults)
	}
}
