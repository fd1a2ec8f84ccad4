package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/ledger"
)

type ledgerResponse struct {
	Applications []domain.TrackedApplication `json:"applications"`
	Count        int                         `json:"count"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type sweepResponse struct {
	Triggered bool                `json:"triggered"`
	Report    *ledger.SweepReport `json:"report,omitempty"`
}

// ListLedger returns the caller's applications, automated as of now.
func ListLedger(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps := d.Ledger.List(r.Context(), userID(r))
		if apps == nil {
			apps = []domain.TrackedApplication{}
		}
		writeJSON(w, http.StatusOK, ledgerResponse{Applications: apps, Count: len(apps)})
	}
}

// OpenApplication adds an application to the caller's ledger.
func OpenApplication(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ledger.OpenRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		entry, err := d.Ledger.Open(r.Context(), userID(r), req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	}
}

// UpdateApplicationStatus records a status change on one entry.
func UpdateApplicationStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req statusRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		entry, err := d.Ledger.UpdateStatus(r.Context(), userID(r), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

// DeleteApplication removes one entry.
func DeleteApplication(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Ledger.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SweepLedgers asks the sweeper for an immediate pass. Without a running
// sweeper the pass runs inline and its report is returned.
func SweepLedgers(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SweepTrigger != nil {
			select {
			case d.SweepTrigger <- struct{}{}:
				d.Logger.Info("manual ledger sweep triggered")
				writeJSON(w, http.StatusAccepted, sweepResponse{Triggered: true})
			default:
				d.Logger.Warn("ledger sweep already pending")
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "sweep already pending"})
			}
			return
		}

		rep := d.Ledger.Sweep(r.Context())
		writeJSON(w, http.StatusOK, sweepResponse{Report: &rep})
	}
}
