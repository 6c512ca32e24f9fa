package models

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Job status values as reported by the management API. The client only
// relies on "pending" meaning not-terminal; any other value is terminal.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Connection identifies a target identity-store backend. It is looked up
// by human-readable name and resolved to an opaque id before use.
type Connection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
}

// ImportJob is the client-side view of a server-side import job. It is
// created by submission and mutated only by the remote service; the local
// system observes it via polling.
type ImportJob struct {
	ID      string                 `json:"id"`
	Status  string                 `json:"status"`
	Summary map[string]interface{} `json:"summary"`
}

// Pending reports whether the job has not yet reached a terminal state.
func (j *ImportJob) Pending() bool {
	return j.Status == JobStatusPending
}

// SubmitOptions carries the optional parts of an import submission.
type SubmitOptions struct {
	// FileName is the name given to the uploaded payload part.
	FileName string
	// ExternalID is an optional caller-supplied idempotency key; no key
	// is generated automatically.
	ExternalID string
}

// JobSummary holds the structured result counts of a terminal import job.
type JobSummary struct {
	Total    int `mapstructure:"total"`
	Inserted int `mapstructure:"inserted"`
	Updated  int `mapstructure:"updated"`
	Failed   int `mapstructure:"failed"`
}

// DecodeSummary converts the loosely typed summary object returned by the
// job status endpoint into a JobSummary. A nil summary decodes to zeroes.
func (j *ImportJob) DecodeSummary() (JobSummary, error) {
	summary := JobSummary{}
	if j.Summary == nil {
		return summary, nil
	}

	if err := mapstructure.WeakDecode(j.Summary, &summary); err != nil {
		return JobSummary{}, fmt.Errorf("failed to decode job summary: %w", err)
	}

	return summary, nil
}
