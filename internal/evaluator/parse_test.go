package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scopelock/leadflow/internal/model"
)

func TestParseResponse_AllFields(t *testing.T) {
	text := `Some preamble from the model.

DECISION: GO
REASON: Strong client with a clear AI automation need
URGENCY: 8
PAIN: 7
CONFIDENCE: 85

Trailing commentary.`

	eval := ParseResponse(text)

	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, "Strong client with a clear AI automation need", eval.Reason)
	assert.Equal(t, 8, eval.Urgency)
	assert.Equal(t, 7, eval.Pain)
	assert.Equal(t, 85, eval.Confidence)
	assert.Equal(t, text, eval.RawResponse)
}

func TestParseResponse_CaseInsensitive(t *testing.T) {
	eval := ParseResponse("decision: no-go\nreason: budget too low\nconfidence: 90")

	assert.Equal(t, model.DecisionNoGo, eval.Decision)
	assert.Equal(t, "budget too low", eval.Reason)
	assert.Equal(t, 90, eval.Confidence)
}

func TestParseResponse_Defaults(t *testing.T) {
	eval := ParseResponse("the model rambled and never used the labels")

	assert.Equal(t, model.DecisionNoGo, eval.Decision)
	assert.Equal(t, "Unknown", eval.Reason)
	assert.Equal(t, 5, eval.Urgency)
	assert.Equal(t, 5, eval.Pain)
	assert.Equal(t, 50, eval.Confidence)
}

func TestParseResponse_PartialOutput(t *testing.T) {
	eval := ParseResponse("DECISION: GO\nCONFIDENCE: 70")

	assert.Equal(t, model.DecisionGo, eval.Decision)
	assert.Equal(t, "Unknown", eval.Reason)
	assert.Equal(t, 5, eval.Urgency)
	assert.Equal(t, 70, eval.Confidence)
}

func TestParseResponse_EmptyReasonKeepsDefault(t *testing.T) {
	eval := ParseResponse("DECISION: GO\nREASON:   ")

	assert.Equal(t, "Unknown", eval.Reason)
}

func TestParseResponse_LastOccurrenceWins(t *testing.T) {
	eval := ParseResponse("DECISION: NO-GO\nDECISION: GO")

	assert.Equal(t, model.DecisionGo, eval.Decision)
}
