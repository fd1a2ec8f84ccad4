package mw

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/rolewithai/internal/utils"
)

type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int           // clients tracked before idle ones are evicted early
	SweepInterval     time.Duration // how often idle clients are evicted
	IdleTTL           time.Duration // a client idle this long starts over with a full burst
	TrustProxy        bool          // resolve the client from proxy headers

	now func() time.Time
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiter keeps one token bucket per client IP.
type limiter struct {
	cfg   RateLimitConfig
	every rate.Limit

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)
	if cfg.now == nil {
		cfg.now = time.Now
	}

	return &limiter{
		cfg:       cfg,
		every:     rate.Every(time.Minute / time.Duration(cfg.RefillPerIPPerMin)),
		clients:   make(map[string]*client, 256),
		lastSweep: cfg.now(),
	}
}

func (l *limiter) get(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	full := l.cfg.MaxEntries > 0 && len(l.clients) >= l.cfg.MaxEntries
	if full || now.Sub(l.lastSweep) >= l.cfg.SweepInterval {
		for k, c := range l.clients {
			if now.Sub(c.lastSeen) > l.cfg.IdleTTL {
				delete(l.clients, k)
			}
		}
		l.lastSweep = now
	}

	c := l.clients[key]
	if c == nil {
		c = &client{lim: rate.NewLimiter(l.every, l.cfg.Burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.lim
}

// allow spends one token for key. When refused, retryAfter is the wait
// until the next token, rounded up to whole seconds.
func (l *limiter) allow(key string, now time.Time) (ok bool, remaining int, retryAfter int) {
	lim := l.get(key, now)
	if lim.AllowN(now, 1) {
		return true, int(math.Floor(lim.TokensAt(now))), 0
	}

	r := lim.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, 0, max(int(math.Ceil(wait.Seconds())), 1)
}

// RateLimit throttles each client IP with a token bucket and answers
// 429 with Retry-After once the bucket is empty.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limitStr := strconv.Itoa(l.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, remaining, retry := l.allow(utils.ClientIP(r, l.cfg.TrustProxy), l.cfg.now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limitStr)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !ok {
				h.Set("Retry-After", strconv.Itoa(retry))
				h.Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":      "too many reports, slow down",
					"retryAfter": retry,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
