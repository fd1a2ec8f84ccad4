package routes

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

type (
	// Mounter attaches a group of routes to r.
	Mounter func(r chi.Router, d deps.Deps)
	// Guard builds a middleware from the runtime deps. Guards are resolved
	// at mount time because init() runs before configuration is loaded.
	Guard func(d deps.Deps) func(http.Handler) http.Handler
)

type group struct {
	name   string
	mount  Mounter
	guards []Guard
}

var groups []group

// Register adds a named route group. Groups mount in registration order,
// each one behind its own guards.
func Register(name string, mount Mounter, guards ...Guard) {
	groups = append(groups, group{name: name, mount: mount, guards: guards})
}

// Groups lists the registered group names.
func Groups() []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.name)
	}
	return slices.Clip(names)
}

// RegisterAll mounts every group on r. Called once from httpserver.New.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		sub := chi.Router(r)
		if len(g.guards) > 0 {
			mws := make([]func(http.Handler) http.Handler, 0, len(g.guards))
			for _, guard := range g.guards {
				mws = append(mws, guard(d))
			}
			sub = r.With(mws...)
		}
		g.mount(sub, d)
		d.Logger.Debug("routes mounted",
			logger.String("group", g.name),
			logger.Int("guards", len(g.guards)))
	}
}
