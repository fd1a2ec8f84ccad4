package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/mw"
)

func init() { Register("api", registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		api.Post("/truth-score", handlers.TruthScore(d))
		api.Post("/truth-score/categorical", handlers.CategoricalScore(d))
		api.Post("/score", handlers.StrategyScore(d))
		api.Post("/signals/visualize", handlers.Visualize(d))
		api.Post("/brief", handlers.Brief(d))

		api.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.ReportRateBurst,
			RefillPerIPPerMin: d.ReportRatePerMin,
			MaxEntries:        10000,
			SweepInterval:     time.Minute,
			IdleTTL:           10 * time.Minute,
			TrustProxy:        d.TrustProxy,
		})).Post("/report-ghosting", handlers.ReportGhosting(d))

		api.Route("/ledger", func(l chi.Router) {
			l.Get("/", handlers.ListLedger(d))
			l.Post("/", handlers.OpenApplication(d))
			l.Post("/sweep", handlers.SweepLedgers(d))
			l.Patch("/{id}", handlers.UpdateApplicationStatus(d))
			l.Delete("/{id}", handlers.DeleteApplication(d))
		})

		api.Route("/profile", func(p chi.Router) {
			p.Get("/", handlers.GetProfile(d))
			p.Post("/shorts", handlers.ShortCompany(d))
			p.Delete("/shorts/{company}", handlers.UnshortCompany(d))
		})
	})
}
