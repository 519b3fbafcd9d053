package evaluator

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/pkg/anthropic"
)

// APIEngine evaluates jobs through the Anthropic Messages API instead of a
// spawned process. Drop-in replacement for CommandEngine with the same
// prompt, deadline, and output contract.
type APIEngine struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewAPIEngine creates an API-backed engine.
func NewAPIEngine(client anthropic.Client, model string, maxTokens int64) *APIEngine {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &APIEngine{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   60 * time.Second,
	}
}

func (e *APIEngine) Evaluate(ctx context.Context, job model.Job) (model.Evaluation, error) {
	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateMessage(cctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: BuildPrompt(job)},
		},
	})
	if err != nil {
		return model.Evaluation{}, eris.Wrap(err, "evaluator: api engine")
	}

	resp.Usage.LogUsage(e.model, "evaluate")

	return ParseResponse(resp.Text), nil
}
