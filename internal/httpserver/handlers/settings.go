package handlers

import (
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/settings"
)

type settingsResponse struct {
	Current *settings.Snapshot   `json:"current"`
	History []*settings.Snapshot `json:"history,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Settings answers GET /settings?limit=N with the active snapshot and,
// when Redis is configured, the previously applied ones (newest first).
func Settings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := settingsResponse{Current: d.Links.Current().Snapshot()}

		if d.Store != nil {
			limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
			history, err := d.Store.SettingsHistory(r.Context(), limit)
			if err != nil {
				d.Logger.Warn("failed to read settings history", logger.Error(err))
				resp.Error = "history unavailable"
			}
			resp.History = history
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
