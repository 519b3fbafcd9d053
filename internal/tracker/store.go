package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/scopelock/leadflow/internal/model"
	"github.com/scopelock/leadflow/internal/store"
)

// StoreTracker writes decision records to the local lead log. Runs alongside
// the external tracker so decisions survive even when the external process is
// unavailable.
type StoreTracker struct {
	store store.Store
}

// NewStoreTracker creates a tracker persisting to the given store.
func NewStoreTracker(st store.Store) *StoreTracker {
	return &StoreTracker{store: st}
}

func (t *StoreTracker) Track(ctx context.Context, rec Record) (string, error) {
	lead := model.LeadRecord{
		ID:         uuid.New().String(),
		JobID:      rec.JobID,
		Platform:   rec.Platform,
		Title:      rec.Title,
		Budget:     rec.Budget,
		Decision:   rec.Decision,
		Reason:     rec.Reason,
		Urgency:    rec.Urgency,
		Pain:       rec.Pain,
		Confidence: rec.Confidence,
		Link:       rec.Link,
		FeedName:   rec.FeedName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := t.store.InsertLead(ctx, lead); err != nil {
		return "", eris.Wrap(err, "tracker: insert lead")
	}
	return "lead " + lead.ID + " recorded", nil
}
