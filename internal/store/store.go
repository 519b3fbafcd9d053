// Package store persists pending approvals and the local lead log. The
// memory driver preserves the original process-lifetime semantics; sqlite
// and postgres drivers survive restarts.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scopelock/leadflow/internal/model"
)

// ErrNotFound is returned when no pending approval exists for a job ID.
// Callers must treat it as a normal state: a callback can race the creation
// of its own entry, and deleted entries stay gone.
var ErrNotFound = eris.New("store: approval not found")

// LeadFilter specifies criteria for listing lead records.
type LeadFilter struct {
	Decision model.Decision
	Limit    int
}

// Store defines the persistence interface for the intake pipeline.
type Store interface {
	// Pending approvals
	PutApproval(ctx context.Context, pa model.PendingApproval) error
	GetApproval(ctx context.Context, jobID string) (*model.PendingApproval, error)
	MarkApproved(ctx context.Context, jobID string, at time.Time) error
	DeleteApproval(ctx context.Context, jobID string) error
	ApprovalCount(ctx context.Context) (int, error)
	PurgeExpired(ctx context.Context, ttl time.Duration) (int, error)

	// Lead log
	InsertLead(ctx context.Context, rec model.LeadRecord) error
	ListLeads(ctx context.Context, filter LeadFilter) ([]model.LeadRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
