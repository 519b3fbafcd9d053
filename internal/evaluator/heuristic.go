package evaluator

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/scopelock/leadflow/internal/model"
)

// aiKeywords mark a listing as in-domain for the studio.
var aiKeywords = []string{"ai", "machine learning", "ml", "llm", "gpt", "chatbot", "nlp", "automation"}

var amountRe = regexp.MustCompile(`\$?(\d+(?:,\d{3})*)`)

// HeuristicEngine is a fully local decision engine applying the same
// three-tier criteria the prompt asks an LLM to apply. Used as a drop-in
// replacement when no external engine is available.
type HeuristicEngine struct{}

// NewHeuristicEngine creates a local rule-based engine.
func NewHeuristicEngine() *HeuristicEngine {
	return &HeuristicEngine{}
}

func (e *HeuristicEngine) Evaluate(_ context.Context, job model.Job) (model.Evaluation, error) {
	budget := ParseAmount(job.Budget)

	if !job.Client.PaymentVerified {
		return model.Evaluation{
			Decision:   model.DecisionNoGo,
			Reason:     "Payment not verified",
			Confidence: 90,
			Urgency:    1,
			Pain:       1,
		}, nil
	}

	if budget < 2000 {
		return model.Evaluation{
			Decision:   model.DecisionNoGo,
			Reason:     "Budget too low (<$2K)",
			Confidence: 90,
			Urgency:    1,
			Pain:       1,
		}, nil
	}

	hasAI := matchesDomain(job.Title, job.Description)
	if !hasAI {
		return model.Evaluation{
			Decision:   model.DecisionNoGo,
			Reason:     "Not AI/ML domain",
			Confidence: 70,
			Urgency:    1,
			Pain:       1,
		}, nil
	}

	spend := ParseAmount(job.Client.TotalSpent)

	eval := model.Evaluation{
		Decision:   model.DecisionGo,
		Reason:     "Qualified MAYBE - payment verified + AI domain",
		Confidence: 65,
	}
	if budget >= 3000 && spend >= 5000 {
		eval.Reason = "Strong client + good budget + AI domain"
		eval.Confidence = 85
	}

	eval.Urgency = 5
	if budget >= 5000 {
		eval.Urgency = 7
	}
	eval.Pain = 6

	return eval, nil
}

func matchesDomain(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, kw := range aiKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ParseAmount extracts the first dollar amount from free text like
// "8000 - 12000 USD" or "$82,639.95 spent". Returns 0 when no amount found.
func ParseAmount(text string) int {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return n
}
