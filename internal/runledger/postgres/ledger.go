package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver for database/sql

	"github.com/haguru/shisui/internal/models"
	"github.com/haguru/shisui/internal/runledger/constants"
	"github.com/haguru/shisui/pkg/databases/postgres"
)

// createRunsTable is executed on startup; the ledger owns its schema.
const createRunsTable = `CREATE TABLE IF NOT EXISTS ` + constants.RunsCollection + ` (
	id TEXT PRIMARY KEY,
	job_id TEXT UNIQUE NOT NULL,
	connection_id TEXT NOT NULL,
	connection_name TEXT NOT NULL,
	prefix TEXT NOT NULL,
	record_count INTEGER NOT NULL,
	status TEXT NOT NULL,
	total INTEGER NOT NULL,
	inserted INTEGER NOT NULL,
	updated INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

// PostgresRunLedger implements RunLedger for PostgreSQL databases.
type PostgresRunLedger struct {
	dbClient *postgres.PostgresDatabaseClient
}

// NewPostgresRunLedger creates a new PostgreSQL ledger instance.
func NewPostgresRunLedger(dbClient *postgres.PostgresDatabaseClient) *PostgresRunLedger {
	return &PostgresRunLedger{dbClient: dbClient}
}

// Record appends one run entry to the ledger and returns its id.
func (l *PostgresRunLedger) Record(ctx context.Context, entry models.RunEntry) (string, error) {
	doc := map[string]interface{}{
		"job_id":          entry.JobID,
		"connection_id":   entry.ConnectionID,
		"connection_name": entry.ConnectionName,
		"prefix":          entry.Prefix,
		"record_count":    entry.RecordCount,
		"status":          entry.Status,
		"total":           entry.Summary.Total,
		"inserted":        entry.Summary.Inserted,
		"updated":         entry.Summary.Updated,
		"failed":          entry.Summary.Failed,
		"started_at":      entry.StartedAt,
		"finished_at":     entry.FinishedAt,
	}

	insertedID, err := l.dbClient.InsertOne(ctx, constants.RunsCollection, doc)
	if err != nil {
		// 23505 is unique_violation: the same job was already recorded.
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return "", fmt.Errorf("run for job '%s' already recorded", entry.JobID)
		}
		return "", fmt.Errorf("failed to record run in PostgreSQL: %w", err)
	}

	strID, ok := insertedID.(string)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to string (expected UUID)")
	}
	return strID, nil
}

// EnsureIndices creates the runs table if it does not exist yet.
func (l *PostgresRunLedger) EnsureIndices(ctx context.Context) error {
	return l.dbClient.EnsureSchema(ctx, constants.RunsCollection, createRunsTable)
}

// Close closes the PostgreSQL database connection.
func (l *PostgresRunLedger) Close(ctx context.Context) error {
	return l.dbClient.Disconnect(ctx)
}
