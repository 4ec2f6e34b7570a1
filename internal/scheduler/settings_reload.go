package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/metrics"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
	redisstore "github.com/MrSnakeDoc/stashlink/internal/store/redis"
)

// SettingsReloader handles periodic reloading of the settings file
type SettingsReloader struct {
	loader        *settings.Loader
	store         *redisstore.Store
	holder        *linker.Holder
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSettingsReloader creates a new settings reloader.
// store may be nil when Redis is not configured.
func NewSettingsReloader(
	settingsFile string,
	store *redisstore.Store,
	holder *linker.Holder,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SettingsReloader {
	return &SettingsReloader{
		loader:        settings.NewLoader(settingsFile),
		store:         store,
		holder:        holder,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the settings file once and begins the periodic reload process.
// A missing file is tolerated (the holder keeps its current snapshot);
// an invalid file is returned as an error.
func (sr *SettingsReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("initial reload failed: %w", err)
		}
		sr.logger.Warn("settings file not found, serving current settings",
			logger.String("file", sr.loader.Path()),
			logger.String("source", sr.holder.Current().Snapshot().Source))
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload settings",
						logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload settings",
						logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (sr *SettingsReloader) Stop() {
	close(sr.stopCh)
}

// Reload loads the settings file and publishes a new snapshot when it changed.
// On error the current snapshot stays in place.
func (sr *SettingsReloader) Reload(ctx context.Context) error {
	sr.logger.Debug("reloading settings", logger.String("file", sr.loader.Path()))

	snap, err := sr.loader.Load()
	metrics.RecordReload(settings.SourceFile, err)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	current := sr.holder.Current().Snapshot()
	if SameSettings(current, snap) {
		if current.Source == settings.SourceFile {
			sr.logger.Debug("settings unchanged")
			return nil
		}
		// Same content restored from redis or defaults: take over the file
		// as source without writing a duplicate history entry.
		sr.logger.Debug("settings match the current snapshot, not persisted",
			logger.String("previous_source", current.Source))
		Apply(ctx, sr.holder, nil, snap, sr.logger)
		return nil
	}

	Apply(ctx, sr.holder, sr.store, snap, sr.logger)
	return nil
}

// Apply publishes snap to the holder and persists it (best effort).
func Apply(ctx context.Context, holder *linker.Holder, store *redisstore.Store, snap *settings.Snapshot, log logger.Logger) {
	l := holder.Swap(snap)
	reg := l.Registry()

	metrics.CustomEndpoints.Set(float64(len(snap.CustomEndpoints) - len(reg.Skipped())))

	log.Info("settings applied",
		logger.String("source", snap.Source),
		logger.String("default_base", reg.DefaultBaseURL()),
		logger.Int("custom_endpoints", len(snap.CustomEndpoints)))

	if skipped := reg.Skipped(); len(skipped) > 0 {
		log.Warn("custom endpoints ignored (invalid or duplicate)",
			logger.Strings("endpoints", skipped))
	}

	// Only file settings are written back; redis and defaults are already known.
	if store == nil || snap.Source != settings.SourceFile {
		return
	}
	if err := store.SaveSettings(ctx, snap); err != nil {
		log.Warn("failed to save settings to redis",
			logger.Error(err))
		// Don't fail - the holder is the primary source
	} else {
		log.Debug("settings saved to redis")
	}
}

// SameSettings reports whether two snapshots carry the same configuration,
// ignoring provenance and load time.
func SameSettings(a, b *settings.Snapshot) bool {
	if a.DefaultEndpoint != b.DefaultEndpoint || !slices.Equal(a.CustomEndpoints, b.CustomEndpoints) {
		return false
	}
	if len(a.Flags) != len(b.Flags) {
		return false
	}
	for k, v := range a.Flags {
		if bv, ok := b.Flags[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
