package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, covers upstream calls (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Scoring
	DefaultStrategy string        // "weighted" | "categorical"
	ScoreCacheTTL   time.Duration // how long a computed Truth Score is served from cache (default: 24h)

	// Upstream collaborators (all optional, empty = deterministic fallback)
	DatabaseURL    string        // postgres URL for community reports
	GeminiAPIKey   string        // insight generation
	GeminiModel    string        // ex: gemini-1.5-flash
	InsightTimeout time.Duration // budget for one insight call
	TavilyAPIKey   string        // ghost signal search
	TavilyBaseURL  string        // ex: https://api.tavily.com
	SearchTimeout  time.Duration // budget for one search call

	// Ledger automation
	SweepInterval  time.Duration // how often the ledger sweep runs (default: 60s)
	LedgerFile     string        // optional YAML seed file of tracked applications
	LedgerUser     string        // owner of entries imported from LedgerFile
	ImportInterval time.Duration // interval to re-read LedgerFile (default: 1h)

	// Community reports
	ReportRetention  time.Duration // reports older than this are pruned (0 = keep forever)
	PruneInterval    time.Duration // interval between prune runs (default: 24h)
	ReportRateBurst  int           // report ingestion burst per client IP
	ReportRatePerMin int           // report ingestion refill per client IP per minute

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	RedisRequired         bool          // false => start memory-only when redis is unreachable

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("RWAI_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("RWAI_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("RWAI_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("RWAI_LOG_LEVEL", "info"),
		PrettyLog: mustBool("RWAI_PRETTY_LOG", true),

		// Scoring
		DefaultStrategy: getenv("RWAI_SCORE_STRATEGY", "weighted"),
		ScoreCacheTTL:   mustDuration("RWAI_SCORE_CACHE_TTL", 24*time.Hour),

		// Upstreams
		DatabaseURL:    getenv("RWAI_DATABASE_URL", ""),
		GeminiAPIKey:   getenv("RWAI_GEMINI_API_KEY", ""),
		GeminiModel:    getenv("RWAI_GEMINI_MODEL", "gemini-1.5-flash"),
		InsightTimeout: mustDuration("RWAI_INSIGHT_TIMEOUT", 8*time.Second),
		TavilyAPIKey:   getenv("RWAI_TAVILY_API_KEY", ""),
		TavilyBaseURL:  getenv("RWAI_TAVILY_BASE_URL", "https://api.tavily.com"),
		SearchTimeout:  mustDuration("RWAI_SEARCH_TIMEOUT", 5*time.Second),

		// Ledger
		SweepInterval:  mustDuration("RWAI_SWEEP_INTERVAL", 60*time.Second),
		LedgerFile:     getenv("RWAI_LEDGER_FILE", ""), // Optional, empty = import disabled
		LedgerUser:     getenv("RWAI_LEDGER_USER", "default"),
		ImportInterval: mustDuration("RWAI_LEDGER_IMPORT_INTERVAL", time.Hour),

		// Reports
		ReportRetention:  mustDuration("RWAI_REPORT_RETENTION", 180*24*time.Hour),
		PruneInterval:    mustDuration("RWAI_PRUNE_INTERVAL", 24*time.Hour),
		ReportRateBurst:  getenvInt("RWAI_REPORT_RATE_BURST", 5),
		ReportRatePerMin: getenvInt("RWAI_REPORT_RATE_PER_MIN", 10),

		// Redis settings
		RedisAddr:             requireEnv("RWAI_REDIS_ADDR"),
		RedisUser:             getenv("RWAI_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("RWAI_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("RWAI_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("RWAI_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		RedisRequired:         mustBool("RWAI_REDIS_REQUIRED", false),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("RWAI_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("RWAI_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("RWAI_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: RWAI_REDIS_PASSWORD is required when RWAI_REDIS_PASSWORD_REQUIRED=true")
	}

	if err := validateStrategy(cfg.DefaultStrategy); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	const mask = "***REDACTED***"
	if c.RedisPassword != "" {
		c.RedisPassword = mask
	}
	if c.RedisUser != "" {
		c.RedisUser = mask
	}
	if c.DatabaseURL != "" {
		c.DatabaseURL = mask
	}
	if c.GeminiAPIKey != "" {
		c.GeminiAPIKey = mask
	}
	if c.TavilyAPIKey != "" {
		c.TavilyAPIKey = mask
	}
	return c
}

func validateStrategy(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weighted", "categorical":
		return nil
	}
	return fmt.Errorf("RWAI_SCORE_STRATEGY must be weighted or categorical, got %q", name)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
