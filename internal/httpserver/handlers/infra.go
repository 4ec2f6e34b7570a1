package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

type componentStatus struct {
	OK              bool                        `json:"ok"`
	Source          string                      `json:"source,omitempty"`
	File            string                      `json:"file,omitempty"`
	LastReload      string                      `json:"last_reload,omitempty"`
	Reloads         *int                        `json:"reloads,omitempty"`
	CustomEndpoints *int                        `json:"custom_endpoints,omitempty"`
	Skipped         []string                    `json:"skipped,omitempty"`
	Mode            string                      `json:"mode,omitempty"`
	Impact          string                      `json:"impact,omitempty"`
	Error           string                      `json:"error,omitempty"`
	Usage           map[string]map[string]int64 `json:"usage,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		current := d.Links.Current()
		snap := current.Snapshot()
		reg := current.Registry()

		lastReload := d.Links.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}
		reloads := d.Links.Reloads()
		customCount := len(lo.Filter(reg.Descriptors(), func(e domain.EndpointDescriptor, _ int) bool {
			return e.Origin == domain.OriginCustom
		}))

		components := map[string]componentStatus{
			"settings": {
				OK:              snap.Source == settings.SourceFile,
				Source:          snap.Source,
				File:            d.SettingsFile,
				LastReload:      lastReloadStr,
				Reloads:         &reloads,
				CustomEndpoints: &customCount,
				Skipped:         reg.Skipped(),
			},
			"redis": checkRedis(r.Context(), d),
			"resolver": {
				OK:   true,
				Mode: "default:" + reg.DefaultBaseURL(),
			},
		}

		response := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineStatus(components map[string]componentStatus) string {
	// Settings not coming from the file = degraded (redis copy or defaults)
	if s, exists := components["settings"]; exists && !s.OK {
		return "degraded"
	}

	// Redis down = degraded (no persistence, no usage counters)
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}

	return "ok"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "settings-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "settings-not-persisted",
			Error:  "timeout",
		}
	}

	usage, err := d.Store.GetUsageStats(ctx, lo.Map(domain.Providers, func(p domain.Provider, _ int) string { return p.Key }))
	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "settings-persisted",
		Usage:  usage,
	}
	if err != nil {
		status.Error = err.Error()
	}
	return status
}
