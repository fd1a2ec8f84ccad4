package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
)

const pingTimeout = 2 * time.Second

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	Users         *int   `json:"users,omitempty"`
	LastSweep     string `json:"last_sweep,omitempty"`
	LastSync      string `json:"last_sync,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	ScoringMode string                     `json:"scoring_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"ledger":   ledgerStatus(d),
			"redis":    checkRedis(r.Context(), d),
			"postgres": checkPostgres(r.Context(), d),
			"gemini":   geminiStatus(d),
			"tavily":   tavilyStatus(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ScoringMode: determineScoringMode(components),
			Components:  components,
		})
	}
}

// determineScoringMode is "live" when every signal source answers,
// "degraded" when scores fall back to defaults for some inputs.
func determineScoringMode(components map[string]componentStatus) string {
	for _, name := range []string{"redis", "postgres", "gemini", "tavily"} {
		if c, ok := components[name]; ok && !c.OK {
			return "degraded"
		}
	}
	return "live"
}

func ledgerStatus(d deps.Deps) componentStatus {
	if d.LedgerIndex == nil {
		return componentStatus{OK: false, Error: "index not initialized"}
	}
	entries := d.LedgerIndex.Count()
	users := d.LedgerIndex.Users()
	return componentStatus{
		OK:            true,
		EntriesLoaded: &entries,
		Users:         &users,
		LastSweep:     formatStamp(d.LedgerIndex.GetLastSweep()),
		LastSync:      formatStamp(d.LedgerIndex.GetLastSync()),
	}
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "memory-only",
			Impact: "score-cache-and-ledger-persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "score-cache-and-ledger-persistence-disabled",
			Error:  "timeout",
		}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}

func checkPostgres(ctx context.Context, d deps.Deps) componentStatus {
	if d.Postgres == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "response-rate-defaults-and-reports-not-stored",
			Error:  "not configured",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := d.Postgres.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "response-rate-defaults-and-reports-not-stored",
			Error:  "unreachable",
		}
	}
	return componentStatus{OK: true, Mode: "optimal"}
}

func geminiStatus(d deps.Deps) componentStatus {
	if d.GeminiModel == "" {
		return componentStatus{OK: false, Mode: "templates", Impact: "fallback-insights"}
	}
	return componentStatus{OK: true, Mode: d.GeminiModel}
}

func tavilyStatus(d deps.Deps) componentStatus {
	if !d.TavilyOn {
		return componentStatus{OK: false, Mode: "disabled", Impact: "ghost-signal-defaults"}
	}
	return componentStatus{OK: true, Mode: "search"}
}
