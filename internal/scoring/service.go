// Package scoring computes Truth Scores for job postings.
package scoring

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/insight"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/narrative"
	"github.com/MrSnakeDoc/rolewithai/internal/validation"
)

// Cached texts returned instead of fresh insights on a cache hit.
const (
	CachedMessage = "Cached analysis available"
	CachedAdvice  = "This analysis was previously calculated."
)

// Cache stores computed scores by posting URL. A miss is (nil, nil).
type Cache interface {
	GetCachedScore(ctx context.Context, jobURL string) (*domain.ScoreSnapshot, error)
	CacheScore(ctx context.Context, snap domain.ScoreSnapshot, ttl time.Duration) error
}

// Signals supplies the live inputs of the weighted formula. Both lookups
// degrade to their defaults instead of failing.
type Signals interface {
	ResponseRate(ctx context.Context, company string) float64
	GhostSignal(ctx context.Context, company string) float64
}

// Request is a posting to score.
type Request struct {
	Title       string `json:"title" validate:"required,max=300"`
	Company     string `json:"company" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	PostedDate  string `json:"postedDate,omitempty"`
	URL         string `json:"url" validate:"required,url"`
	Platform    string `json:"platform,omitempty"`
}

func (r Request) posting() domain.JobPosting {
	return domain.JobPosting{
		Title:       r.Title,
		Company:     r.Company,
		PostedDate:  r.PostedDate,
		Platform:    r.Platform,
		Description: r.Description,
		URL:         r.URL,
	}
}

// Breakdown holds the three inputs that produced a weighted score.
type Breakdown struct {
	AgeFactor    float64 `json:"ageFactor"`
	ResponseRate float64 `json:"responseRate"`
	GhostSignal  float64 `json:"ghostSignal"`
}

// Response is the result returned to the client.
type Response struct {
	TruthScore int              `json:"truthScore"`
	GhostRisk  string           `json:"ghostRisk"`
	Insights   insight.Insights `json:"insights"`
	Breakdown  Breakdown        `json:"breakdown"`
	Why        string           `json:"why,omitempty"`
	Cached     bool             `json:"cached,omitempty"`
}

// Options configures a Service.
type Options struct {
	Cache    Cache // optional
	Signals  Signals
	Insights insight.Generator
	CacheTTL time.Duration
	Logger   logger.Logger
}

type Service struct {
	cache    Cache
	signals  Signals
	insights insight.Generator
	ttl      time.Duration
	logger   logger.Logger
	validate *validation.Validator
	now      func() time.Time
}

func NewService(opts Options) *Service {
	gen := opts.Insights
	if gen == nil {
		gen = insight.FallbackGenerator{}
	}
	return &Service{
		cache:    opts.Cache,
		signals:  opts.Signals,
		insights: gen,
		ttl:      opts.CacheTTL,
		logger:   opts.Logger,
		validate: validation.New(),
		now:      time.Now,
	}
}

// Score runs the weighted formula for req. Only invalid input is an error;
// every unavailable collaborator degrades to a default.
func (s *Service) Score(ctx context.Context, req Request) (Response, error) {
	req.Company = strings.TrimSpace(req.Company)
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return Response{}, err
	}

	if resp, ok := s.lookup(ctx, req.URL); ok {
		return resp, nil
	}

	now := s.now()
	age := domain.AgeFactor(req.posting().AgeDays(now))
	rate, ghost := s.gather(ctx, req.Company)

	result, err := domain.ScoreWeighted(domain.WeightedInput{
		AgeFactor:    &age,
		ResponseRate: &rate,
		GhostSignal:  &ghost,
	})
	if err != nil {
		return Response{}, err
	}

	ins, err := s.insights.Generate(ctx, insight.Request{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		TruthScore:   result.Score,
		GhostRisk:    result.Risk,
		AgeFactor:    age,
		ResponseRate: rate,
		GhostSignal:  ghost,
	})
	if err != nil {
		s.logger.Warn("insight generation failed, using templates", logger.Error(err))
		ins = insight.Fallback(insight.Request{Company: req.Company, TruthScore: result.Score})
	}

	s.store(ctx, domain.ScoreSnapshot{
		URL:          req.URL,
		Company:      req.Company,
		Title:        req.Title,
		TruthScore:   result.Score,
		GhostRisk:    result.Risk,
		AgeFactor:    age,
		ResponseRate: rate,
		GhostSignal:  ghost,
		CalculatedAt: now.UTC(),
	})

	s.logger.Info("truth score computed",
		logger.String("company", req.Company),
		logger.Int("score", result.Score),
		logger.String("risk", string(result.Risk)))

	return Response{
		TruthScore: result.Score,
		GhostRisk:  string(result.Risk),
		Insights:   ins,
		Breakdown:  Breakdown{AgeFactor: age, ResponseRate: rate, GhostSignal: ghost},
		Why:        result.Why,
	}, nil
}

// gather fetches the response rate and ghost signal concurrently.
func (s *Service) gather(ctx context.Context, company string) (rate, ghost float64) {
	rate, ghost = domain.DefaultResponseRate, domain.DefaultGhostSignal
	if s.signals == nil {
		return rate, ghost
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rate = s.signals.ResponseRate(gctx, company)
		return nil
	})
	g.Go(func() error {
		ghost = s.signals.GhostSignal(gctx, company)
		return nil
	})
	_ = g.Wait()
	return rate, ghost
}

func (s *Service) lookup(ctx context.Context, url string) (Response, bool) {
	if s.cache == nil {
		return Response{}, false
	}
	snap, err := s.cache.GetCachedScore(ctx, url)
	if err != nil {
		s.logger.Warn("score cache unavailable", logger.String("url", url), logger.Error(err))
		return Response{}, false
	}
	if snap == nil {
		return Response{}, false
	}
	return Response{
		TruthScore: snap.TruthScore,
		GhostRisk:  string(snap.GhostRisk),
		Insights:   insight.Insights{Message: CachedMessage, DetailedAdvice: CachedAdvice},
		Breakdown: Breakdown{
			AgeFactor:    snap.AgeFactor,
			ResponseRate: snap.ResponseRate,
			GhostSignal:  snap.GhostSignal,
		},
		Cached: true,
	}, true
}

func (s *Service) store(ctx context.Context, snap domain.ScoreSnapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.CacheScore(ctx, snap, s.ttl); err != nil {
		s.logger.Warn("failed to cache truth score", logger.String("url", snap.URL), logger.Error(err))
	}
}

// ─────────────────────────────────────────────────────────────────
// Categorical variant
// ─────────────────────────────────────────────────────────────────

// CategoricalRequest carries the extension's categorical signals.
type CategoricalRequest struct {
	Company            string `json:"company"`
	PostedDate         string `json:"postedDate,omitempty"`
	RecruiterActivity  string `json:"recruiterActivity"`
	RepostFrequency    string `json:"repostFrequency"`
	CommunitySentiment string `json:"communitySentiment"`
}

// CategoricalResponse is a Variant B score with its display data.
type CategoricalResponse struct {
	Result        domain.TruthScoreResult    `json:"result"`
	Visualization domain.SignalVisualization `json:"visualization"`
	Dialogue      string                     `json:"dialogue"`
	WhyDialogue   string                     `json:"whyDialogue"`
}

// ScoreCategorical runs the additive formula and renders its narrative.
func (s *Service) ScoreCategorical(req CategoricalRequest) (CategoricalResponse, error) {
	sig, err := domain.ParseGhostSignal(req.RecruiterActivity, req.RepostFrequency, req.CommunitySentiment)
	if err != nil {
		return CategoricalResponse{}, err
	}

	now := s.now()
	result, err := domain.ScoreCategorical(domain.CategoricalInput{Signal: sig, PostedDate: req.PostedDate}, now)
	if err != nil {
		return CategoricalResponse{}, err
	}

	days, present := domain.PostingAgeDays(req.PostedDate, now)
	if !present {
		days = domain.UnknownAgeDays
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		company = "this company"
	}

	return CategoricalResponse{
		Result:        result,
		Visualization: domain.ProcessGhostSignal(sig),
		Dialogue:      narrative.JobDialogue(result.Score, sig, company),
		WhyDialogue:   narrative.WhyScoreDialogue(sig, int(days)),
	}, nil
}

// Visualize returns the display breakdown of a categorical signal.
func Visualize(recruiter, repost, sentiment string) (domain.SignalVisualization, error) {
	sig, err := domain.ParseGhostSignal(recruiter, repost, sentiment)
	if err != nil {
		return domain.SignalVisualization{}, err
	}
	return domain.ProcessGhostSignal(sig), nil
}
