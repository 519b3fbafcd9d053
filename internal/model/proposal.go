package model

import "time"

// Proposal is a fully assembled proposal document for a GO job. Immutable
// once drafted.
type Proposal struct {
	JobID string `json:"job_id"`
	Text  string `json:"text"`
}

// PendingApproval correlates a drafted proposal with an operator action.
// One exists iff a GO decision produced a proposal for the job and no
// terminal operator action (submit-acknowledged or skip) has occurred since.
type PendingApproval struct {
	JobID      string     `json:"job_id"`
	Job        Job        `json:"job"`
	Evaluation Evaluation `json:"evaluation"`
	Proposal   string     `json:"proposal"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// LeadRecord is the locally persisted trace of one evaluated job.
type LeadRecord struct {
	ID         string    `json:"id"`
	JobID      string    `json:"job_id"`
	Platform   string    `json:"platform"`
	Title      string    `json:"title"`
	Budget     string    `json:"budget"`
	Decision   Decision  `json:"decision"`
	Reason     string    `json:"reason"`
	Urgency    int       `json:"urgency"`
	Pain       int       `json:"pain"`
	Confidence int       `json:"confidence"`
	Link       string    `json:"link"`
	FeedName   string    `json:"feed_name"`
	CreatedAt  time.Time `json:"created_at"`
}
