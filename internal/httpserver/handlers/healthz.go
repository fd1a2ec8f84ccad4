package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go,omitempty"`
}

type healthzResponse struct {
	Status        string    `json:"status"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	Build         buildInfo `json:"build"`
}

// Healthz is the liveness probe. It never touches an upstream.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{Version: d.Version, Commit: d.Commit, Date: d.BuildDate, GoVersion: d.GoVersion}
	return func(w http.ResponseWriter, _ *http.Request) {
		uptime := d.Now().Sub(d.StartTime).Round(time.Millisecond)
		writeJSON(w, http.StatusOK, healthzResponse{Status: "ok", UptimeSeconds: uptime.Seconds(), Build: build})
	}
}
