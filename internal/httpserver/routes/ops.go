package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/mw"
)

func init() {
	Register("health", func(r chi.Router, d deps.Deps) {
		r.Get("/healthz", handlers.Healthz(d))
	})
	Register("ops", registerOps, opsAllowlist)
}

func opsAllowlist(d deps.Deps) func(http.Handler) http.Handler {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/infra", handlers.Infra(d))
}
