package model

import (
	"encoding/json"
	"time"
)

// Client holds the reputation fields of the client behind a listing.
type Client struct {
	TotalSpent      string `json:"total_spent"`
	Rating          string `json:"rating"`
	Hires           int    `json:"hires"`
	PaymentVerified bool   `json:"payment_verified"`
	Location        string `json:"location"`
	Rank            string `json:"rank"`
	Reviews         int    `json:"reviews"`
}

// Feed identifies the monitoring filter that produced a batch. Attached to
// jobs for traceability only.
type Feed struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Job is the canonical listing shape used by the pipeline. Immutable after
// normalization; never persisted beyond the lead log.
type Job struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Budget          string          `json:"budget"`
	BudgetType      string          `json:"budget_type"`
	Client          Client          `json:"client"`
	ProposalsCount  int             `json:"proposals_count"`
	FeedName        string          `json:"feed_name"`
	Link            string          `json:"link"`
	PostedAt        time.Time       `json:"posted_at"`
	Skills          []string        `json:"skills"`
	Categories      []string        `json:"categories"`
	Duration        string          `json:"duration"`
	Engagement      string          `json:"engagement"`
	ExperienceLevel string          `json:"experience_level"`
	JobType         string          `json:"job_type"`
	Questions       []string        `json:"questions"`
	USOnly          bool            `json:"us_only"`
	UKOnly          bool            `json:"uk_only"`
	RawPayload      json.RawMessage `json:"raw_payload,omitempty"` // original project record, kept for diagnostics
}
