package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/scoring"
)

// TruthScore scores a posting with the weighted formula and live signals.
func TruthScore(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoring.Request
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		resp, err := d.Scoring.Score(r.Context(), req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CategoricalScore scores a posting from the extension's categorical signals.
func CategoricalScore(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scoring.CategoricalRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		resp, err := d.Scoring.ScoreCategorical(req)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// StrategyScore scores already-known signals with the strategy named in the
// body, or the configured default.
func StrategyScore(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in scoring.SignalInput
		if err := decode(r, &in); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		res, err := scoring.ScoreSignals(in, d.DefaultStrategy, d.Now())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

type visualizeRequest struct {
	RecruiterActivity  string `json:"recruiterActivity"`
	RepostFrequency    string `json:"repostFrequency"`
	CommunitySentiment string `json:"communitySentiment"`
}

// Visualize turns a ghost signal into display metadata.
func Visualize(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req visualizeRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		v, err := scoring.Visualize(req.RecruiterActivity, req.RepostFrequency, req.CommunitySentiment)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}
