package mw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("ok"))
	})
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"api.rolewithai.app", "*.Example.com", " "}, logger.NewNop())(okHandler(http.StatusOK))

	tests := []struct {
		host string
		want int
	}{
		{"api.rolewithai.app", http.StatusOK},
		{"API.rolewithai.app:8443", http.StatusOK},
		{"ext.example.com", http.StatusOK},
		{"example.com", http.StatusForbidden},
		{"evil-example.com", http.StatusForbidden},
		{"localhost", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			r.Host = tt.host
			if got := serve(h, r).Code; got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}

	open := EnforceHost(nil, logger.NewNop())(okHandler(http.StatusOK))
	if got := serve(open, httptest.NewRequest(http.MethodGet, "/", nil)).Code; got != http.StatusOK {
		t.Errorf("passthrough status = %d, want 200", got)
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		remote     string
		forwarded  string
		trustProxy bool
		want       int
	}{
		{"empty list passes", nil, "203.0.113.9:1", "", false, http.StatusOK},
		{"inside cidr", []string{"10.0.0.0/8"}, "10.1.2.3:1", "", false, http.StatusOK},
		{"outside cidr", []string{"10.0.0.0/8"}, "203.0.113.9:1", "", false, http.StatusForbidden},
		{"forwarded when trusted", []string{"10.0.0.0/8"}, "127.0.0.1:1", "10.9.9.9", true, http.StatusOK},
		{"forwarded ignored when untrusted", []string{"10.0.0.0/8"}, "127.0.0.1:1", "10.9.9.9", false, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, tt.trustProxy, logger.NewNop())(okHandler(http.StatusOK))
			r := httptest.NewRequest(http.MethodGet, "/infra", nil)
			r.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := serve(h, r).Code; got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLogLevelsByStatus(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		want   zapcore.Level
	}{
		{"success", "/api/ledger", http.StatusOK, zapcore.InfoLevel},
		{"probe", "/healthz", http.StatusOK, zapcore.DebugLevel},
		{"client error", "/api/ledger", http.StatusBadRequest, zapcore.WarnLevel},
		{"server error", "/api/truth-score", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := Log(logger.FromZap(zap.New(core)), false)(okHandler(tt.status))

			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.Header.Set("X-User-ID", "alice")
			serve(h, r)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("logged %d entries, want 1", len(entries))
			}
			e := entries[0]
			if e.Level != tt.want {
				t.Errorf("level = %v, want %v", e.Level, tt.want)
			}
			fields := e.ContextMap()
			if fields["status"] != int64(tt.status) {
				t.Errorf("status field = %v, want %d", fields["status"], tt.status)
			}
			if fields["user_id"] != "alice" {
				t.Errorf("user_id field = %v, want alice", fields["user_id"])
			}
			if fields["bytes"] != int64(2) {
				t.Errorf("bytes field = %v, want 2", fields["bytes"])
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { called = true }))

	r := httptest.NewRequest(http.MethodOptions, "/api/report-ghosting", nil)
	r.Header.Set("Origin", "chrome-extension://abc")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "Content-Type, X-User-ID")
	rec := serve(h, r)

	if rec.Code >= 300 {
		t.Errorf("status = %d, want 2xx", rec.Code)
	}
	if called {
		t.Error("preflight reached the handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Errorf("Allow-Methods = %q, want POST", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.EqualFold(got, "Content-Type, X-User-ID") {
		t.Errorf("Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Max-Age = %q, want 600", got)
	}
}

func TestCORSRejectsUnlistedHeader(t *testing.T) {
	h := CORS()(okHandler(http.StatusOK))

	r := httptest.NewRequest(http.MethodOptions, "/api/ledger", nil)
	r.Header.Set("Origin", "https://evil.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	r.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := serve(h, r)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none for an unlisted header", got)
	}
}

func TestCORSSimpleRequest(t *testing.T) {
	h := CORS()(okHandler(http.StatusOK))

	r := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	r.Header.Set("Origin", "chrome-extension://abc")
	rec := serve(h, r)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Retry-After") {
		t.Errorf("Expose-Headers = %q, want Retry-After listed", got)
	}
}
