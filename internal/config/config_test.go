package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RWAI_REDIS_ADDR", "localhost:6379")
	t.Setenv("RWAI_REDIS_DB", "0")
	t.Setenv("RWAI_REDIS_PASSWORD_REQUIRED", "false")
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s should have panicked", name)
		}
	}()
	fn()
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("RWAI_TEST_VAR", "value")
	if got := requireEnv("RWAI_TEST_VAR"); got != "value" {
		t.Errorf("requireEnv() = %q, want %q", got, "value")
	}
	expectPanic(t, "requireEnv(missing)", func() { requireEnv("RWAI_TEST_VAR_MISSING") })
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", expected: 42},
		{name: "invalid integer", value: "not_a_number", wantPanic: true},
		{name: "missing variable", value: "", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RWAI_TEST_INT", tt.value)
			if tt.wantPanic {
				expectPanic(t, "requireEnvInt()", func() { requireEnvInt("RWAI_TEST_INT") })
				return
			}
			if got := requireEnvInt("RWAI_TEST_INT"); got != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDurationAndBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		dur   time.Duration
		b     bool
	}{
		{name: "valid values", value: "5s", dur: 5 * time.Second, b: true},
		{name: "invalid values use defaults", value: "soon", dur: time.Minute, b: true},
		{name: "missing values use defaults", value: "", dur: time.Minute, b: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RWAI_TEST_DURATION", tt.value)
			if got := mustDuration("RWAI_TEST_DURATION", time.Minute); got != tt.dur {
				t.Errorf("mustDuration() = %v, want %v", got, tt.dur)
			}
			t.Setenv("RWAI_TEST_BOOL", tt.value)
			if got := mustBool("RWAI_TEST_BOOL", true); got != tt.b {
				t.Errorf("mustBool() = %v, want %v", got, tt.b)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a.example.com", []string{"a.example.com"}},
		{` "a.example.com" , 'b.example.com',, `, []string{"a.example.com", "b.example.com"}},
	}

	for _, tt := range tests {
		if got := splitAndTrim(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg := Load()

	if cfg.SweepInterval != 60*time.Second {
		t.Errorf("SweepInterval = %v, want 60s", cfg.SweepInterval)
	}
	if cfg.DefaultStrategy != "weighted" {
		t.Errorf("DefaultStrategy = %q, want weighted", cfg.DefaultStrategy)
	}
	if cfg.ScoreCacheTTL != 24*time.Hour {
		t.Errorf("ScoreCacheTTL = %v, want 24h", cfg.ScoreCacheTTL)
	}
	if cfg.LedgerFile != "" || cfg.DatabaseURL != "" || cfg.GeminiAPIKey != "" {
		t.Error("optional collaborators should be disabled by default")
	}
	if cfg.RedisRequired {
		t.Error("RedisRequired should default to false so startup survives a Redis outage")
	}
	if cfg.AllowedHosts != nil {
		t.Errorf("AllowedHosts = %v, want nil", cfg.AllowedHosts)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("RWAI_SCORE_STRATEGY", "categorical")
	t.Setenv("RWAI_SWEEP_INTERVAL", "2m")
	t.Setenv("RWAI_ALLOWED_CIDRS", "10.0.0.0/8, 192.168.1.4")
	t.Setenv("RWAI_REPORT_RATE_BURST", "9")
	t.Setenv("RWAI_REDIS_REQUIRED", "true")

	cfg := Load()

	if cfg.DefaultStrategy != "categorical" {
		t.Errorf("DefaultStrategy = %q", cfg.DefaultStrategy)
	}
	if cfg.SweepInterval != 2*time.Minute {
		t.Errorf("SweepInterval = %v", cfg.SweepInterval)
	}
	if len(cfg.AllowedCIDRS) != 2 {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if cfg.ReportRateBurst != 9 {
		t.Errorf("ReportRateBurst = %d", cfg.ReportRateBurst)
	}
	if !cfg.RedisRequired {
		t.Error("RedisRequired should follow RWAI_REDIS_REQUIRED")
	}
}

func TestLoadPanics(t *testing.T) {
	t.Run("unknown strategy", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("RWAI_SCORE_STRATEGY", "merged")
		expectPanic(t, "Load()", func() { Load() })
	})
	t.Run("missing redis password", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("RWAI_REDIS_PASSWORD_REQUIRED", "true")
		t.Setenv("RWAI_REDIS_PASSWORD", "")
		expectPanic(t, "Load()", func() { Load() })
	})
	t.Run("missing redis addr", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("RWAI_REDIS_ADDR", "")
		expectPanic(t, "Load()", func() { Load() })
	})
}

func TestRedacted(t *testing.T) {
	cfg := Config{
		RedisPassword: "hunter2",
		DatabaseURL:   "postgres://u:p@db/rwai",
		GeminiAPIKey:  "g-key",
		TavilyAPIKey:  "t-key",
	}
	out := cfg.Redacted()
	printed := strings.Join([]string{out.RedisPassword, out.DatabaseURL, out.GeminiAPIKey, out.TavilyAPIKey}, " ")
	for _, secret := range []string{"hunter2", "postgres://", "g-key", "t-key"} {
		if strings.Contains(printed, secret) {
			t.Errorf("Redacted() leaked %q", secret)
		}
	}
	if cfg.GeminiAPIKey != "g-key" {
		t.Error("Redacted() modified the receiver")
	}
}
