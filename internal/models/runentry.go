package models

import "time"

// RunEntry is one row in the run ledger: the audit record a finished
// seeding run leaves behind. It never contains password material.
type RunEntry struct {
	JobID          string     `bson:"job_id" mapstructure:"job_id" db:"job_id"`
	ConnectionID   string     `bson:"connection_id" mapstructure:"connection_id" db:"connection_id"`
	ConnectionName string     `bson:"connection_name" mapstructure:"connection_name" db:"connection_name"`
	Prefix         string     `bson:"prefix" mapstructure:"prefix" db:"prefix"`
	RecordCount    int        `bson:"record_count" mapstructure:"record_count" db:"record_count"`
	Status         string     `bson:"status" mapstructure:"status" db:"status"`
	Summary        JobSummary `bson:"summary" mapstructure:"summary" db:"-"`
	StartedAt      time.Time  `bson:"started_at" mapstructure:"started_at" db:"started_at"`
	FinishedAt     time.Time  `bson:"finished_at" mapstructure:"finished_at" db:"finished_at"`
}
