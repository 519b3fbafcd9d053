package model

// Decision is the evaluator's verdict on a job.
type Decision string

const (
	DecisionGo   Decision = "GO"
	DecisionNoGo Decision = "NO-GO"
)

// Evaluation is the structured result of evaluating one job. Produced exactly
// once per job; immutable.
type Evaluation struct {
	Decision    Decision `json:"decision"`
	Reason      string   `json:"reason"`
	Urgency     int      `json:"urgency"`    // 1-10, how time-sensitive
	Pain        int      `json:"pain"`       // 1-10, how painful the problem
	Confidence  int      `json:"confidence"` // 0-100
	RawResponse string   `json:"raw_response,omitempty"`
}
