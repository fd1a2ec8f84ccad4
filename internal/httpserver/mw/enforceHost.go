package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/utils"
)

// EnforceHost rejects requests whose Host is not in allowedHosts. Patterns
// may start with "*." to match any subdomain. Ports are ignored on both
// sides. An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	patterns := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		if h = normalizeHost(h); h != "" {
			patterns = append(patterns, h)
		}
	}

	if len(patterns) == 0 {
		log.Debug("EnforceHost: no allowed hosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}
	log.Debug("EnforceHost: initialized", logger.Strings("hosts", patterns))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := normalizeHost(r.Host)
			for _, p := range patterns {
				if matchHost(host, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("EnforceHost: rejected", logger.String("host", r.Host))
			forbid(w)
		})
	}
}

func normalizeHost(h string) string {
	return strings.ToLower(utils.ParseHostNoPort(h))
}

// matchHost expects both sides normalized.
func matchHost(host, pattern string) bool {
	if suffix, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+suffix)
	}
	return host == pattern
}
