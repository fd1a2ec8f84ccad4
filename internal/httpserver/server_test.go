package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/rolewithai/internal/config"
	"github.com/MrSnakeDoc/rolewithai/internal/httpserver/deps"
	"github.com/MrSnakeDoc/rolewithai/internal/index"
	"github.com/MrSnakeDoc/rolewithai/internal/ledger"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/scoring"
)

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, defaultRequestTimeout, requestTimeout(&config.Config{}))
	assert.Equal(t, 3*time.Second, requestTimeout(&config.Config{RequestTimeout: 3 * time.Second}))
}

func TestServerHandlerStack(t *testing.T) {
	log := logger.NewNop()
	idx := index.NewLedgerIndex()
	d := deps.Deps{
		Logger:      log,
		StartTime:   time.Now(),
		LedgerIndex: idx,
		Scoring:     scoring.NewService(scoring.Options{Logger: log}),
		Ledger:      ledger.NewService(idx, nil, nil, log),
	}
	s := New(&config.Config{ListenPort: ":0"}, log, d)
	h := s.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"head falls back to get", http.MethodHead, "/healthz", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", http.StatusOK},
		{"unknown", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "chrome-extension://abc")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
