package mw

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Headers the browser extension sends.
var corsAllowedHeaders = []string{"Content-Type", "X-User-ID", "X-Request-ID"}

var corsAllowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// CORS lets the browser extension call the API from any page. Responses
// carry no credentials, so a wildcard origin is safe.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: corsAllowedMethods,
		AllowedHeaders: corsAllowedHeaders,
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         600,
	})
}
