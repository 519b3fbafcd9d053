package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/pkg/anthropic"
)

// mockAnthropicClient implements anthropic.Client for testing.
type mockAnthropicClient struct {
	lastReq anthropic.MessageRequest
	resp    *anthropic.MessageResponse
	err     error
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.lastReq = req
	return m.resp, m.err
}

func TestAPIEngine_ParsesResponse(t *testing.T) {
	client := &mockAnthropicClient{
		resp: &anthropic.MessageResponse{
			Text: "DECISION: GO\nREASON: verified client\nURGENCY: 6\nPAIN: 7\nCONFIDENCE: 80",
		},
	}
	engine := NewAPIEngine(client, "claude-sonnet-4-5-20250929", 1024)

	job := model.Job{ID: "job-1", Title: "AI chatbot", Budget: "$4,000"}
	eval, err := engine.Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, "verified client", eval.Reason)
	assert.Equal(t, 80, eval.Confidence)

	assert.Equal(t, "claude-sonnet-4-5-20250929", client.lastReq.Model)
	assert.Equal(t, int64(1024), client.lastReq.MaxTokens)
	require.Len(t, client.lastReq.Messages, 1)
	assert.Equal(t, "user", client.lastReq.Messages[0].Role)
	assert.Contains(t, client.lastReq.Messages[0].Content, "Title: AI chatbot")
}

func TestAPIEngine_PropagatesAPIError(t *testing.T) {
	client := &mockAnthropicClient{err: errors.New("overloaded")}
	engine := NewAPIEngine(client, "claude-sonnet-4-5-20250929", 0)

	_, err := engine.Evaluate(context.Background(), model.Job{ID: "job-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api engine")
}

func TestAPIEngine_DefaultMaxTokens(t *testing.T) {
	client := &mockAnthropicClient{resp: &anthropic.MessageResponse{Text: "DECISION: NO-GO"}}
	engine := NewAPIEngine(client, "claude-sonnet-4-5-20250929", 0)

	_, err := engine.Evaluate(context.Background(), model.Job{ID: "job-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1024), client.lastReq.MaxTokens)
}
