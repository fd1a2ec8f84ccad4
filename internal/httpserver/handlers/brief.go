package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/narrative"
	"github.com/MrSnakeDoc/rolewithai/internal/validation"
)

// briefRequest leaves out what the server already knows: the ghosting trend
// comes from stored reports and impact points from the caller's profile.
// Bounds apply to what the client sends; server-derived values are trusted.
type briefRequest struct {
	HiringVelocity float64  `json:"hiringVelocity" validate:"gte=-100,lte=1000"`
	GhostingRate   *float64 `json:"ghostingRate,omitempty" validate:"omitempty,gte=-100,lte=1000"`
	ImpactPoints   *int     `json:"impactPoints,omitempty" validate:"omitempty,gte=0"`
}

type briefResponse struct {
	TimeOfDay narrative.TimeOfDay    `json:"timeOfDay"`
	Vitals    narrative.MarketVitals `json:"vitals"`
	Brief     string                 `json:"brief"`
}

// Brief renders the daily market brief for the caller.
func Brief(d deps.Deps) http.HandlerFunc {
	validate := validation.New()

	return func(w http.ResponseWriter, r *http.Request) {
		var req briefRequest
		if err := decode(r, &req); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			writeError(w, d.Logger, err)
			return
		}

		vitals := narrative.MarketVitals{HiringVelocity: req.HiringVelocity}

		if req.GhostingRate != nil {
			vitals.GhostingRate = *req.GhostingRate
		} else {
			vitals.GhostingRate = d.Reports.Trend(r.Context())
		}

		if req.ImpactPoints != nil {
			vitals.ImpactPoints = *req.ImpactPoints
		} else if v, err := d.Profiles.Get(r.Context(), userID(r)); err == nil {
			vitals.ImpactPoints = v.ImpactPoints
		} else {
			d.Logger.Warn("brief without profile points", logger.Error(err))
		}

		tod := narrative.TimeOfDayAt(d.Now())
		writeJSON(w, http.StatusOK, briefResponse{
			TimeOfDay: tod,
			Vitals:    vitals,
			Brief:     narrative.MorningBrief(vitals, tod),
		})
	}
}
