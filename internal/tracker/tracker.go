// Package tracker records every evaluation decision with the external lead
// tracking system. Tracking is best-effort telemetry: callers log failures
// and keep going.
package tracker

import (
	"context"

	"github.com/scopelock/leadflow/internal/model"
)

// Record is one tracked decision.
type Record struct {
	Platform   string
	Title      string
	Budget     string
	Decision   model.Decision
	Reason     string
	Link       string
	Urgency    int
	Pain       int
	Confidence int
	JobID      string
	FeedName   string
}

// Tracker logs a decision record. The returned string is the tracker's own
// output, surfaced for logging only.
type Tracker interface {
	Track(ctx context.Context, rec Record) (string, error)
}
