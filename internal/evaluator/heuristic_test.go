package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelock/leadflow/internal/model"
)

func heuristicJob() model.Job {
	return model.Job{
		ID:          "job-1",
		Title:       "Build an AI chatbot",
		Description: "We need an LLM-powered assistant for customer support.",
		Budget:      "$4,000",
		Client: model.Client{
			PaymentVerified: true,
			TotalSpent:      "$12,000",
		},
	}
}

func TestHeuristicEngine_UnverifiedPayment(t *testing.T) {
	job := heuristicJob()
	job.Client.PaymentVerified = false

	eval, err := NewHeuristicEngine().Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoGo, eval.Decision)
	assert.Equal(t, "Payment not verified", eval.Reason)
	assert.Equal(t, 90, eval.Confidence)
}

func TestHeuristicEngine_LowBudget(t *testing.T) {
	job := heuristicJob()
	job.Budget = "$1,500"

	eval, err := NewHeuristicEngine().Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoGo, eval.Decision)
	assert.Equal(t, "Budget too low (<$2K)", eval.Reason)
	assert.Equal(t, 90, eval.Confidence)
}

func TestHeuristicEngine_OutOfDomain(t *testing.T) {
	job := heuristicJob()
	job.Title = "WordPress theme customization"
	job.Description = "Adjust fonts and colors on our marketing site."

	eval, err := NewHeuristicEngine().Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoGo, eval.Decision)
	assert.Equal(t, "Not AI/ML domain", eval.Reason)
	assert.Equal(t, 70, eval.Confidence)
}

func TestHeuristicEngine_StrongTier(t *testing.T) {
	eval, err := NewHeuristicEngine().Evaluate(context.Background(), heuristicJob())

	require.NoError(t, err)
	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, 85, eval.Confidence)
	assert.Equal(t, 5, eval.Urgency)
	assert.Equal(t, 6, eval.Pain)
}

func TestHeuristicEngine_QualifiedMaybe(t *testing.T) {
	job := heuristicJob()
	job.Budget = "$2,500"
	job.Client.TotalSpent = "$500"

	eval, err := NewHeuristicEngine().Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, 65, eval.Confidence)
}

func TestHeuristicEngine_HighBudgetUrgency(t *testing.T) {
	job := heuristicJob()
	job.Budget = "$8,000"

	eval, err := NewHeuristicEngine().Evaluate(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, 7, eval.Urgency)
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 8000, ParseAmount("8000 - 12000 USD"))
	assert.Equal(t, 82639, ParseAmount("$82,639.95 spent"))
	assert.Equal(t, 0, ParseAmount("no numbers here"))
	assert.Equal(t, 0, ParseAmount(""))
}
