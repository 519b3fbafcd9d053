package evaluator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/scopelock/leadflow/internal/model"
)

// Labeled-field patterns the engines are asked to emit. Matching is
// case-insensitive and tolerant: a field that does not match keeps its
// default, so partial or malformed output still yields a usable result.
var (
	decisionRe   = regexp.MustCompile(`(?i)DECISION:\s*(GO|NO-GO)`)
	urgencyRe    = regexp.MustCompile(`(?i)URGENCY:\s*(\d+)`)
	painRe       = regexp.MustCompile(`(?i)PAIN:\s*(\d+)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(\d+)`)
	reasonRe     = regexp.MustCompile(`(?i)REASON:`)
)

// ParseResponse scans engine output line by line for the labeled
// DECISION/REASON/URGENCY/PAIN/CONFIDENCE fields. Missing fields keep
// defaults: NO-GO, "Unknown", 5, 5, 50.
func ParseResponse(text string) model.Evaluation {
	eval := model.Evaluation{
		Decision:    model.DecisionNoGo,
		Reason:      "Unknown",
		Urgency:     5,
		Pain:        5,
		Confidence:  50,
		RawResponse: text,
	}

	for _, line := range strings.Split(text, "\n") {
		if m := decisionRe.FindStringSubmatch(line); m != nil {
			eval.Decision = model.Decision(strings.ToUpper(m[1]))
		}

		if loc := reasonRe.FindStringIndex(line); loc != nil {
			if reason := strings.TrimSpace(line[loc[1]:]); reason != "" {
				eval.Reason = reason
			}
		}

		if m := urgencyRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				eval.Urgency = n
			}
		}

		if m := painRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				eval.Pain = n
			}
		}

		if m := confidenceRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				eval.Confidence = n
			}
		}
	}

	return eval
}
