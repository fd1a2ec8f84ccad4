package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
)

type shortRequest struct {
	Company string `json:"company"`
}

// GetProfile returns the caller's impact points, level and shorted companies.
func GetProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Profiles.Get(r.Context(), userID(r))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// ShortCompany adds a company to the caller's shorted list.
func ShortCompany(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shortRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		v, err := d.Profiles.Short(r.Context(), userID(r), req.Company)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// UnshortCompany removes a company from the caller's shorted list.
func UnshortCompany(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Profiles.Unshort(r.Context(), userID(r), chi.URLParam(r, "company"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
