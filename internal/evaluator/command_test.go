package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelock/leadflow/internal/model"
)

func TestCommandEngine_ParsesOutput(t *testing.T) {
	// The prompt is appended as the final argument; sh -c consumes it as $0.
	engine := NewCommandEngine("sh", []string{"-c", `printf 'DECISION: GO\nREASON: looks solid\nCONFIDENCE: 80\n'`})

	eval, err := engine.Evaluate(context.Background(), model.Job{ID: "job-1", Title: "AI bot"})

	require.NoError(t, err)
	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, "looks solid", eval.Reason)
	assert.Equal(t, 80, eval.Confidence)
}

func TestCommandEngine_Timeout(t *testing.T) {
	engine := NewCommandEngine("sh", []string{"-c", "sleep 5"}, WithTimeout(100*time.Millisecond))

	start := time.Now()
	_, err := engine.Evaluate(context.Background(), model.Job{ID: "job-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command timeout")
	assert.Less(t, time.Since(start), 2*time.Second, "process should be killed at the deadline")
}

func TestCommandEngine_NonZeroExit(t *testing.T) {
	engine := NewCommandEngine("sh", []string{"-c", "echo boom >&2; exit 1"})

	_, err := engine.Evaluate(context.Background(), model.Job{ID: "job-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
	assert.Contains(t, err.Error(), "boom")
}
