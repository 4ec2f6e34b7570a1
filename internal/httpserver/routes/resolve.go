package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stashlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stashlink/internal/httpserver/mw"
)

func init() { Register("resolve", registerResolve) }

func registerResolve(r chi.Router, d deps.Deps) {
	limited := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(d.RateLimit),
	)

	limited.Get("/go/{provider}", handlers.Jump(d))
	limited.Route("/api", func(api chi.Router) {
		api.Get("/resolve", handlers.Resolve(d))
		api.Post("/links", handlers.Links(d))
		api.Get("/providers", handlers.Providers(d))
	})
}
