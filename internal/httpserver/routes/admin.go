package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/mw"
)

func init() { Register("admin", registerAdmin) }

// registerAdmin exposes operator endpoints, restricted to AllowedCIDRS.
func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

	admin.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
	admin.Get("/infra", handlers.Infra(d))
	admin.Get("/settings", handlers.Settings(d))
	admin.Method("GET", "/metrics", promhttp.Handler())
}
