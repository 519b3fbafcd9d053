// Package evaluator decides whether a job is worth a proposal. Decision
// engines are pluggable; the Evaluator wrapper guarantees a non-failing
// result so one bad evaluation never stalls a batch.
package evaluator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/scopelock/leadflow/internal/model"
)

// Engine is a swappable decision engine.
type Engine interface {
	Evaluate(ctx context.Context, job model.Job) (model.Evaluation, error)
}

// Evaluator wraps an Engine with rate limiting and failure recovery.
type Evaluator struct {
	engine  Engine
	limiter *rate.Limiter
}

// Option configures the Evaluator.
type Option func(*Evaluator)

// WithRateLimit caps engine invocations per minute. Zero disables the cap.
func WithRateLimit(perMinute int) Option {
	return func(e *Evaluator) {
		if perMinute > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
		}
	}
}

// New creates an Evaluator around the given engine.
func New(engine Engine, opts ...Option) *Evaluator {
	e := &Evaluator{engine: engine}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the engine on a job. It never returns an error: engine
// failures (timeout, bad exit, transport) are logged and converted into a
// deterministic NO-GO with confidence 0 so the pipeline keeps moving.
func (e *Evaluator) Evaluate(ctx context.Context, job model.Job) model.Evaluation {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return failedEvaluation(err)
		}
	}

	eval, err := e.engine.Evaluate(ctx, job)
	if err != nil {
		zap.L().Error("evaluator: engine failed",
			zap.String("job_id", job.ID),
			zap.String("title", job.Title),
			zap.Error(err),
		)
		return failedEvaluation(err)
	}

	return eval
}

func failedEvaluation(err error) model.Evaluation {
	return model.Evaluation{
		Decision:   model.DecisionNoGo,
		Reason:     fmt.Sprintf("Evaluation error: %v", err),
		Urgency:    0,
		Pain:       0,
		Confidence: 0,
	}
}
