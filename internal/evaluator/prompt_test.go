package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scopelock/leadflow/internal/model"
)

func TestBuildPrompt_IncludesJobAndClient(t *testing.T) {
	job := model.Job{
		Title:       "AI chatbot for support",
		Budget:      "$4,000",
		Description: "Automate tier-1 tickets.",
		Client: model.Client{
			TotalSpent:      "$12,000",
			Rating:          "4.9",
			Hires:           14,
			PaymentVerified: true,
			Location:        "Germany",
		},
		ProposalsCount: 12,
		FeedName:       "AI Jobs",
		Link:           "https://www.upwork.com/jobs/~abc123",
	}

	prompt := BuildPrompt(job)

	assert.Contains(t, prompt, "Title: AI chatbot for support")
	assert.Contains(t, prompt, "Budget: $4,000")
	assert.Contains(t, prompt, "- Total spent: $12,000")
	assert.Contains(t, prompt, "- Payment verified: true")
	assert.Contains(t, prompt, "- Current proposals: 12")
	assert.Contains(t, prompt, "- Feed: AI Jobs")
	assert.Contains(t, prompt, "DECISION: [GO or NO-GO]")
	assert.Contains(t, prompt, "CONFIDENCE: [0-100")
}
