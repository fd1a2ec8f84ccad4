package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h := RateLimit(RateLimitConfig{
		Burst:             2,
		RefillPerIPPerMin: 6, // one token every 10s
		now:               func() time.Time { return now },
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	hit := func(remote string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/report-ghosting", nil)
		r.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	for i, wantRemaining := range []string{"1", "0"} {
		rec := hit("10.0.0.1:5000")
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d, want 201", i, rec.Code)
		}
		if got := rec.Header().Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Errorf("request %d: remaining = %s, want %s", i, got, wantRemaining)
		}
	}

	rec := hit("10.0.0.1:5001")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "10" {
		t.Errorf("Retry-After = %s, want 10", got)
	}

	// Another client has its own bucket.
	if rec := hit("10.0.0.2:5000"); rec.Code != http.StatusCreated {
		t.Errorf("other client: status = %d, want 201", rec.Code)
	}

	now = now.Add(10 * time.Second)
	if rec := hit("10.0.0.1:5000"); rec.Code != http.StatusCreated {
		t.Errorf("after refill: status = %d, want 201", rec.Code)
	}
}

func TestLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{
		Burst:         1,
		IdleTTL:       time.Minute,
		SweepInterval: time.Minute,
		now:           func() time.Time { return now },
	})

	l.allow("a", now)
	l.allow("b", now.Add(90*time.Second))
	l.allow("c", now.Add(3*time.Minute))

	if _, ok := l.clients["a"]; ok {
		t.Error("idle client a was not evicted")
	}
	if len(l.clients) != 1 {
		t.Errorf("tracked clients = %d, want 1", len(l.clients))
	}
}
