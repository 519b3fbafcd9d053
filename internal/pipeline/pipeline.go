// Package pipeline orchestrates the intake flow for each incoming job:
// normalize, evaluate, track, and, for accepted listings, draft a proposal,
// store it for operator approval, and notify.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/scopelock/leadflow/internal/config"
	"github.com/scopelock/leadflow/internal/evaluator"
	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/notify"
	"github.com/scopelock/leadflow/internal/proposal"
	"github.com/scopelock/leadflow/internal/store"
	"github.com/scopelock/leadflow/internal/tracker"
)

// Pipeline wires the intake stages together.
type Pipeline struct {
	cfg        config.PipelineConfig
	evaluator  *evaluator.Evaluator
	trackers   []tracker.Tracker
	drafter    *proposal.Drafter
	store      store.Store
	dispatcher *notify.Dispatcher
}

// New creates a Pipeline with all dependencies.
func New(
	cfg config.PipelineConfig,
	eval *evaluator.Evaluator,
	trackers []tracker.Tracker,
	drafter *proposal.Drafter,
	st store.Store,
	dispatcher *notify.Dispatcher,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		evaluator:  eval,
		trackers:   trackers,
		drafter:    drafter,
		store:      st,
		dispatcher: dispatcher,
	}
}

// ProcessBatch normalizes every project in a payload and processes them
// concurrently under the configured limit. One job's failure never affects
// its siblings; there is no ordering guarantee within a batch.
func (p *Pipeline) ProcessBatch(ctx context.Context, payload model.BatchPayload) {
	feed := payload.Filter
	if feed == nil && len(payload.Filters) > 0 {
		feed = &payload.Filters[0]
	}

	limit := p.cfg.MaxConcurrent
	if limit <= 0 {
		limit = 4
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, project := range payload.Projects {
		job := Normalize(project, feed)
		g.Go(func() error {
			p.Process(gCtx, job)
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("pipeline: batch complete",
		zap.Int("projects", len(payload.Projects)),
	)
}

// Process runs the full intake flow for one job. Errors at any stage are
// logged with job context and absorbed here.
func (p *Pipeline) Process(ctx context.Context, job model.Job) {
	log := zap.L().With(
		zap.String("job_id", job.ID),
		zap.String("title", job.Title),
	)
	log.Info("pipeline: processing job",
		zap.String("budget", job.Budget),
		zap.String("feed", job.FeedName),
	)

	eval := p.evaluator.Evaluate(ctx, job)

	log.Info("pipeline: job evaluated",
		zap.String("decision", string(eval.Decision)),
		zap.String("reason", eval.Reason),
		zap.Int("confidence", eval.Confidence),
	)

	p.track(ctx, job, eval)

	if eval.Decision != model.DecisionGo {
		log.Info("pipeline: NO-GO decision, skipping proposal")
		return
	}

	prop := p.drafter.Draft(job, eval)

	pa := model.PendingApproval{
		JobID:      job.ID,
		Job:        job,
		Evaluation: eval,
		Proposal:   prop.Text,
		CreatedAt:  time.Now().UTC(),
	}
	if err := p.store.PutApproval(ctx, pa); err != nil {
		log.Error("pipeline: failed to store approval", zap.Error(err))
		return
	}

	if p.dispatcher == nil {
		log.Warn("pipeline: no dispatcher configured, proposal stored without notification")
		return
	}
	p.dispatcher.NotifyProposal(ctx, job, eval, prop)

	log.Info("pipeline: proposal drafted and notification sent")
}

// track records the decision with every configured tracker. Tracking is
// best-effort telemetry, so failures are logged and absorbed.
func (p *Pipeline) track(ctx context.Context, job model.Job, eval model.Evaluation) {
	rec := tracker.Record{
		Platform:   p.cfg.Platform,
		Title:      job.Title,
		Budget:     job.Budget,
		Decision:   eval.Decision,
		Reason:     eval.Reason,
		Link:       job.Link,
		Urgency:    eval.Urgency,
		Pain:       eval.Pain,
		Confidence: eval.Confidence,
		JobID:      job.ID,
		FeedName:   job.FeedName,
	}

	for _, t := range p.trackers {
		out, err := t.Track(ctx, rec)
		if err != nil {
			zap.L().Error("pipeline: lead tracking failed",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}
		if out != "" {
			zap.L().Debug("pipeline: lead tracked",
				zap.String("job_id", job.ID),
				zap.String("output", out),
			)
		}
	}
}
