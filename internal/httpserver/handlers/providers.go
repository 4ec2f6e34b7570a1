package handlers

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/MrSnakeDoc/stashlink/internal/domain"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
)

type providerResponse struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	WebsiteBase string   `json:"website_base"`
	Kinds       []string `json:"kinds"`
}

type endpointResponse struct {
	Label   string `json:"label"`
	BaseURL string `json:"base_url"`
	Origin  string `json:"origin"`
}

type providersResponse struct {
	DefaultBase string             `json:"default_base"`
	Providers   []providerResponse `json:"providers"`
	Endpoints   []endpointResponse `json:"endpoints"`
}

// Providers answers GET /api/providers with the provider table and registered endpoints
func Providers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := d.Links.Current()

		providers := make([]providerResponse, 0, len(domain.Providers))
		for _, link := range current.Links() {
			p := link.Provider()
			providers = append(providers, providerResponse{
				Key:         p.Key,
				Name:        p.Name,
				Enabled:     link.Enabled(),
				WebsiteBase: link.WebsiteBase(),
				Kinds:       lo.Map(p.Kinds, func(k domain.EntityKind, _ int) string { return string(k) }),
			})
		}

		endpoints := lo.Map(current.Registry().Descriptors(), func(e domain.EndpointDescriptor, _ int) endpointResponse {
			return endpointResponse{Label: e.Label, BaseURL: e.BaseURL, Origin: string(e.Origin)}
		})

		writeJSON(w, http.StatusOK, providersResponse{
			DefaultBase: current.Registry().DefaultBaseURL(),
			Providers:   providers,
			Endpoints:   endpoints,
		})
	}
}
