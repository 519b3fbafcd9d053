package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/scopelock/leadflow/internal/evaluator"
	"github.com/scopelock/leadflow/internal/notify"
	"github.com/scopelock/leadflow/internal/pipeline"
	"github.com/scopelock/leadflow/internal/proposal"
	"github.com/scopelock/leadflow/internal/store"
	"github.com/scopelock/leadflow/internal/tracker"
	anthropicpkg "github.com/scopelock/leadflow/pkg/anthropic"
	"github.com/scopelock/leadflow/pkg/telegram"
)

// pipelineEnv holds the initialized store, clients, and pipeline needed by
// the serve command.
type pipelineEnv struct {
	Store      store.Store
	Pipeline   *pipeline.Pipeline
	Dispatcher *notify.Dispatcher
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the approval/lead store selected by approval.driver.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Approval.Driver {
	case "", "memory":
		return store.NewMemory(), nil
	case "sqlite":
		st, err := store.NewSQLite(cfg.Approval.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "open sqlite store")
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Approval.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "open postgres store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown approval driver %q", cfg.Approval.Driver)
	}
}

// initEvaluator builds the decision engine selected by evaluator.engine and
// wraps it with the shared failure-isolation layer.
func initEvaluator() (*evaluator.Evaluator, error) {
	var engine evaluator.Engine

	switch cfg.Evaluator.Engine {
	case "", "command":
		engine = evaluator.NewCommandEngine(cfg.Evaluator.Command, cfg.Evaluator.CommandArgs,
			evaluator.WithWorkDir(cfg.Evaluator.WorkDir),
			evaluator.WithTimeout(time.Duration(cfg.Evaluator.TimeoutSecs)*time.Second),
		)
	case "api":
		if cfg.Anthropic.Key == "" {
			return nil, eris.New("anthropic.key is required for the api engine")
		}
		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		engine = evaluator.NewAPIEngine(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	case "heuristic":
		engine = evaluator.NewHeuristicEngine()
	default:
		return nil, eris.Errorf("unknown evaluator engine %q", cfg.Evaluator.Engine)
	}

	var opts []evaluator.Option
	if cfg.Evaluator.RatePerMinute > 0 {
		opts = append(opts, evaluator.WithRateLimit(cfg.Evaluator.RatePerMinute))
	}

	return evaluator.New(engine, opts...), nil
}

// initPipeline sets up the store, evaluator, trackers, drafter, and Telegram
// dispatcher. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	eval, err := initEvaluator()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	trackers := []tracker.Tracker{tracker.NewStoreTracker(st)}
	if cfg.Tracker.Script != "" {
		trackers = append(trackers, tracker.NewCommandTracker(cfg.Tracker.Command, cfg.Tracker.Script, cfg.Tracker.TimeoutSecs))
	} else {
		zap.L().Debug("tracker.script not set, external tracker disabled")
	}

	var dispatcher *notify.Dispatcher
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		var tgOpts []telegram.Option
		if cfg.Telegram.BaseURL != "" {
			tgOpts = append(tgOpts, telegram.WithBaseURL(cfg.Telegram.BaseURL))
		}
		tg := telegram.NewClient(cfg.Telegram.BotToken, tgOpts...)
		dispatcher = notify.NewDispatcher(tg, cfg.Telegram.ChatID)
		zap.L().Info("telegram notifications enabled", zap.String("chat_id", cfg.Telegram.ChatID))
	} else {
		zap.L().Warn("telegram not configured, proposals will not be routed for approval")
	}

	drafter := proposal.NewDrafter(cfg.Proposal)

	p := pipeline.New(cfg.Pipeline, eval, trackers, drafter, st, dispatcher)

	zap.L().Info("pipeline initialized",
		zap.String("evaluator", evaluatorName()),
		zap.String("store", storeName()),
		zap.Int("trackers", len(trackers)),
	)

	return &pipelineEnv{
		Store:      st,
		Pipeline:   p,
		Dispatcher: dispatcher,
	}, nil
}

func evaluatorName() string {
	if cfg.Evaluator.Engine == "" {
		return "command"
	}
	return cfg.Evaluator.Engine
}

func storeName() string {
	if cfg.Approval.Driver == "" {
		return "memory"
	}
	return cfg.Approval.Driver
}
