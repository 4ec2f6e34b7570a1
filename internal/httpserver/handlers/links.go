package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/metrics"
)

// maxLinksBody bounds the POST /api/links request body
const maxLinksBody = 64 << 10

type linksRequest struct {
	Kind string            `json:"kind" validate:"required"`
	IDs  map[string]string `json:"ids" validate:"required,min=1,max=64"`
}

type linkEntry struct {
	Provider string `json:"provider"`
	Format   string `json:"format"`
	URL      string `json:"url"`
}

type linksResponse struct {
	Kind  string      `json:"kind"`
	Links []linkEntry `json:"links"`
}

var validate = validator.New()

// Links answers POST /api/links with every link applying to a record.
// Providers without a link are omitted.
//
//	{"kind": "movie", "ids": {"stashdb": "https://stashdb.org/graphql|abc"}}
func Links(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linksRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLinksBody)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed"})
			return
		}

		kind, err := domain.ParseEntityKind(req.Kind)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		ids := make(map[string]string, len(req.IDs))
		for k, v := range req.IDs {
			ids[strings.ToLower(strings.TrimSpace(k))] = v
		}
		record := domain.MediaRecord{Kind: kind, ProviderIDs: ids}

		// One linker for the whole request, so every provider sees the same settings.
		results := d.Links.Current().LinksFor(record)
		entries := make([]linkEntry, 0, len(results))
		for _, res := range results {
			metrics.RecordResolution(res.Provider, res.Format.String(), metrics.OutcomeResolved)
			recordUsage(r.Context(), d, res.Provider, res.Format, true)
			entries = append(entries, linkEntry{
				Provider: res.Provider,
				Format:   res.Format.String(),
				URL:      res.URL,
			})
		}

		d.Logger.Debug("links request",
			logger.String("kind", string(kind)),
			logger.Int("ids", len(ids)),
			logger.Int("links", len(entries)))

		writeJSON(w, http.StatusOK, linksResponse{Kind: string(kind), Links: entries})
	}
}
