package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/rolewithai/internal/index"
	"github.com/MrSnakeDoc/rolewithai/internal/ledger"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/profile"
	"github.com/MrSnakeDoc/rolewithai/internal/reports"
	"github.com/MrSnakeDoc/rolewithai/internal/scoring"
)

// Pinger is any upstream whose liveness can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	TimeNow          func() time.Time // for testing, defaults to time.Now
	AllowedHosts     []string         // Host headers allowed to access the server
	AllowedCIDRS     []string         // IPs allowed to access ops endpoints
	TrustProxy       bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	ReportRateBurst  int              // report ingestion burst per client IP
	ReportRatePerMin int              // report ingestion refill per client IP per minute
	DefaultStrategy  string           // strategy used by /api/score when the request names none

	RedisClient *redis.Client      // nil when running memory-only
	Postgres    Pinger             // nil when no database is configured
	GeminiModel string             // empty when insights use templates only
	TavilyOn    bool               // ghost signal search configured
	LedgerIndex *index.LedgerIndex // In-memory ledgers

	Scoring  *scoring.Service
	Ledger   *ledger.Service
	Profiles *profile.Service
	Reports  *reports.Service

	SweepTrigger chan struct{} // Channel to trigger a manual ledger sweep
}

// Now returns the injected clock, or time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
