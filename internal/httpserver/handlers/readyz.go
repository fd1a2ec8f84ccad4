package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz is ready once the scoring and ledger services are wired. Upstreams
// only degrade features and are reported by /infra instead.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := d.Scoring != nil && d.Ledger != nil && d.LedgerIndex != nil
		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready})
	}
}
