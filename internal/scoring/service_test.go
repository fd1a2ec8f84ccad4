package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/insight"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.ScoreSnapshot
	getErr  error
	setErr  error
	ttl     time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.ScoreSnapshot)}
}

func (c *fakeCache) GetCachedScore(_ context.Context, url string) (*domain.ScoreSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	s, ok := c.entries[url]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *fakeCache) CacheScore(_ context.Context, snap domain.ScoreSnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[snap.URL] = snap
	c.ttl = ttl
	return nil
}

type fakeSignals struct {
	rate, ghost float64
	companies   []string
	mu          sync.Mutex
}

func (f *fakeSignals) ResponseRate(_ context.Context, company string) float64 {
	f.mu.Lock()
	f.companies = append(f.companies, company)
	f.mu.Unlock()
	return f.rate
}

func (f *fakeSignals) GhostSignal(_ context.Context, _ string) float64 { return f.ghost }

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, insight.Request) (insight.Insights, error) {
	return insight.Insights{}, errors.New("model unavailable")
}

func newTestService(cache Cache, sig Signals, gen insight.Generator) *Service {
	s := NewService(Options{Cache: cache, Signals: sig, Insights: gen, CacheTTL: time.Hour, Logger: logger.NewNop()})
	s.now = func() time.Time { return testNow }
	return s
}

func validRequest() Request {
	return Request{
		Title:      "Platform Engineer",
		Company:    " Acme ",
		PostedDate: "2026-02-28",
		URL:        "https://jobs.example/acme/1",
		Platform:   "linkedin",
	}
}

func TestScoreComputesAndCaches(t *testing.T) {
	cache := newFakeCache()
	sig := &fakeSignals{rate: 80, ghost: 20}
	s := newTestService(cache, sig, nil)

	resp, err := s.Score(context.Background(), validRequest())
	require.NoError(t, err)

	// 0.4*90 + 0.4*80 - 0.2*20
	assert.Equal(t, 64, resp.TruthScore)
	assert.Equal(t, "medium", resp.GhostRisk)
	assert.False(t, resp.Cached)
	assert.Equal(t, Breakdown{AgeFactor: 90, ResponseRate: 80, GhostSignal: 20}, resp.Breakdown)
	assert.Contains(t, resp.Insights.Message, "Moderate match. Acme")
	assert.Equal(t, []string{"Acme"}, sig.companies)

	snap, ok := cache.entries["https://jobs.example/acme/1"]
	require.True(t, ok)
	assert.Equal(t, 64, snap.TruthScore)
	assert.Equal(t, domain.RiskMedium, snap.GhostRisk)
	assert.Equal(t, testNow, snap.CalculatedAt)
	assert.Equal(t, time.Hour, cache.ttl)
}

func TestScoreCacheHit(t *testing.T) {
	cache := newFakeCache()
	cache.entries["https://jobs.example/acme/1"] = domain.ScoreSnapshot{
		URL: "https://jobs.example/acme/1", TruthScore: 77, GhostRisk: domain.RiskLow,
		AgeFactor: 90, ResponseRate: 85, GhostSignal: 10,
	}
	sig := &fakeSignals{rate: 0, ghost: 100}
	s := newTestService(cache, sig, failingGenerator{})

	resp, err := s.Score(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.Cached)
	assert.Equal(t, 77, resp.TruthScore)
	assert.Equal(t, "low", resp.GhostRisk)
	assert.Equal(t, CachedMessage, resp.Insights.Message)
	assert.Equal(t, CachedAdvice, resp.Insights.DetailedAdvice)
	assert.Equal(t, Breakdown{AgeFactor: 90, ResponseRate: 85, GhostSignal: 10}, resp.Breakdown)
	assert.Empty(t, sig.companies, "signals must not be fetched on a hit")
}

func TestScoreDegradesGracefully(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	s := newTestService(cache, nil, failingGenerator{})

	req := validRequest()
	req.PostedDate = ""
	resp, err := s.Score(context.Background(), req)
	require.NoError(t, err)

	// Defaults: 0.4*50 + 0.4*60 - 0.2*30
	assert.Equal(t, 38, resp.TruthScore)
	assert.Equal(t, "high", resp.GhostRisk)
	assert.Equal(t, insight.Fallback(insight.Request{Company: "Acme", TruthScore: 38}), resp.Insights)
}

func TestScoreValidation(t *testing.T) {
	s := newTestService(nil, nil, nil)

	tests := []struct {
		name  string
		edit  func(*Request)
		field string
	}{
		{"missing title", func(r *Request) { r.Title = "  " }, "title"},
		{"missing company", func(r *Request) { r.Company = "" }, "company"},
		{"missing url", func(r *Request) { r.URL = "" }, "url"},
		{"bad url", func(r *Request) { r.URL = "jobs/1" }, "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.edit(&req)
			_, err := s.Score(context.Background(), req)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "want validation error, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestScoreCategorical(t *testing.T) {
	s := newTestService(nil, nil, nil)

	resp, err := s.ScoreCategorical(CategoricalRequest{
		Company:            "Acme",
		PostedDate:         "2026-02-27",
		RecruiterActivity:  "High",
		RepostFrequency:    "None",
		CommunitySentiment: "Positive",
	})
	require.NoError(t, err)

	// 50 + 40 + 0 + 0 + 15, clamped to 100
	assert.Equal(t, 100, resp.Result.Score)
	assert.Equal(t, domain.RiskLow, resp.Result.Risk)
	assert.Equal(t, domain.TonePositive, resp.Visualization.RecruiterActivity.Tone)
	assert.Contains(t, resp.Dialogue, "Acme has been actively engaging")
	assert.Contains(t, resp.WhyDialogue, "fresh posting (3 days old)")
}

func TestScoreCategoricalRejectsUnknownLevel(t *testing.T) {
	s := newTestService(nil, nil, nil)

	_, err := s.ScoreCategorical(CategoricalRequest{RecruiterActivity: "Frantic"})
	assert.True(t, domain.IsValidation(err))
}

func TestVisualize(t *testing.T) {
	v, err := Visualize("moderate", "high", "negative")
	require.NoError(t, err)
	assert.Equal(t, "moderate", v.RecruiterActivity.Level)
	assert.Equal(t, domain.ToneMuted, v.RepostFrequency.Tone)
	// 50 + 15 - 25 - 25
	assert.Equal(t, 15, v.OverallScore)

	_, err = Visualize("", "sometimes", "")
	assert.True(t, domain.IsValidation(err))
}
