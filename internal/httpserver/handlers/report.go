package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/reports"
)

// ReportGhosting records a community ghosting report. The body's userId
// wins over the X-User-ID header.
func ReportGhosting(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reports.Request
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if req.UserID == "" {
			if id := r.Header.Get(UserHeader); id != "" {
				req.UserID = id
			}
		}

		ack, err := d.Reports.Submit(r.Context(), req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, ack)
	}
}
