package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Source string `json:"settings_source,omitempty"`
}

// Readyz reports ready once a settings snapshot is being served
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if d.Links == nil || d.Links.Current() == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:  true,
			Source: d.Links.Current().Snapshot().Source,
		})
	}
}
