package insight

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// Resilient wraps a primary generator and answers with Fallback whenever the
// primary is missing, slow or wrong. Its Generate never returns an error.
type Resilient struct {
	primary Generator
	timeout time.Duration
	logger  logger.Logger
}

// NewResilient builds the wrapper. primary may be nil.
func NewResilient(primary Generator, timeout time.Duration, log logger.Logger) *Resilient {
	return &Resilient{primary: primary, timeout: timeout, logger: log}
}

// Enabled reports whether a primary generator is configured.
func (r *Resilient) Enabled() bool { return r.primary != nil }

func (r *Resilient) Generate(ctx context.Context, req Request) (Insights, error) {
	if r.primary == nil {
		return Fallback(req), nil
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ins, err := r.primary.Generate(ctx, req)
	if err != nil {
		r.logger.Warn("insight generation failed, using templates",
			logger.String("company", req.Company),
			logger.Error(err))
		return Fallback(req), nil
	}
	return ins, nil
}
