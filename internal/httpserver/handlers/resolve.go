package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/linker"
	"github.com/MrSnakeDoc/stashlink/internal/logger"
	"github.com/MrSnakeDoc/stashlink/internal/metrics"
	redisstore "github.com/MrSnakeDoc/stashlink/internal/store/redis"
)

type resolveResponse struct {
	Provider  string `json:"provider"`
	Kind      string `json:"kind"`
	Format    string `json:"format"`
	Supported bool   `json:"supported"`
	URL       string `json:"url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// resolution is the outcome of one provider lookup
type resolution struct {
	supported bool
	format    domain.IdentifierFormat
	url       string
}

// Resolve answers GET /api/resolve?provider=stashdb&kind=movie&id=<stored value>
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		providerKey := strings.ToLower(strings.TrimSpace(q.Get("provider")))

		link, record, ok := lookupRequest(w, d, providerKey, q.Get("kind"), q.Get("id"))
		if !ok {
			return
		}

		res := resolveOne(r.Context(), d, link, record)
		status := http.StatusOK
		if res.url == "" {
			status = http.StatusNotFound
		}

		writeJSON(w, status, resolveResponse{
			Provider:  link.CapabilityKey(),
			Kind:      string(record.Kind),
			Format:    res.format.String(),
			Supported: res.supported,
			URL:       res.url,
		})
	}
}

// Jump answers GET /go/{provider}?kind=movie&id=<stored value> with a redirect
func Jump(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerKey := strings.ToLower(chi.URLParam(r, "provider"))
		q := r.URL.Query()

		link, record, ok := lookupRequest(w, d, providerKey, q.Get("kind"), q.Get("id"))
		if !ok {
			return
		}

		res := resolveOne(r.Context(), d, link, record)
		if res.url == "" {
			d.Logger.Debug("no link for record",
				logger.String("provider", providerKey),
				logger.Bool("supported", res.supported))
			http.NotFound(w, r)
			return
		}

		http.Redirect(w, r, res.url, http.StatusFound)
	}
}

// lookupRequest validates provider/kind/id inputs and writes a 400 on failure.
// An empty kind means movie.
func lookupRequest(w http.ResponseWriter, d deps.Deps, providerKey, kind, id string) (*linker.Link, domain.MediaRecord, bool) {
	link, found := d.Links.Current().Link(providerKey)
	if !found {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown provider: " + providerKey})
		return nil, domain.MediaRecord{}, false
	}

	entityKind := domain.KindMovie
	if strings.TrimSpace(kind) != "" {
		k, err := domain.ParseEntityKind(kind)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return nil, domain.MediaRecord{}, false
		}
		entityKind = k
	}

	record := domain.MediaRecord{
		Kind:        entityKind,
		ProviderIDs: map[string]string{link.CapabilityKey(): id},
	}
	return link, record, true
}

// resolveOne runs the capability check and resolution for a single provider,
// then records metrics and usage counters.
func resolveOne(ctx context.Context, d deps.Deps, link *linker.Link, record domain.MediaRecord) resolution {
	key := link.CapabilityKey()
	parsed := domain.ParseIdentifier(record.ProviderID(key))
	res := resolution{format: parsed.Format, supported: link.Supports(record)}

	outcome := metrics.OutcomeUnsupported
	if res.supported {
		outcome = metrics.OutcomeUnresolved
		if u, ok := link.ResolveURL(record).Get(); ok {
			res.url = u
			outcome = metrics.OutcomeResolved
		}
	}

	metrics.RecordResolution(key, parsed.Format.String(), outcome)
	d.Logger.Debug("resolution",
		logger.String("provider", key),
		logger.String("identifier", parsed.String()),
		logger.String("outcome", outcome))

	recordUsage(ctx, d, key, parsed.Format, res.url != "")
	return res
}

// recordUsage increments the Redis usage counters (best effort)
func recordUsage(ctx context.Context, d deps.Deps, provider string, format domain.IdentifierFormat, resolved bool) {
	if d.Store == nil {
		return
	}
	field := format.String()
	if !resolved {
		field = redisstore.FieldUnresolved
	}
	if err := d.Store.IncrementUsage(ctx, provider, field); err != nil {
		d.Logger.Debug("failed to record usage", logger.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
