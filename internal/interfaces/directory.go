package interfaces

import (
	"context"
	"time"

	"github.com/haguru/shisui/internal/models"
)

// Directory is the client-side view of the identity platform's
// management API: connection lookup, bulk import submission and job
// status polling.
type Directory interface {
	// ResolveConnection returns the id of the first connection whose name
	// matches exactly, or management.ErrConnectionNotFound.
	ResolveConnection(ctx context.Context, name string) (string, error)

	// SubmitImport starts a bulk user import job on the remote side. The
	// payload is the serialized ImportBatch. Submission mutates remote
	// state; at-most-once is the caller's responsibility.
	SubmitImport(ctx context.Context, payload []byte, connectionID string, opts models.SubmitOptions) (*models.ImportJob, error)

	// GetJob fetches the current state of a job.
	GetJob(ctx context.Context, jobID string) (*models.ImportJob, error)

	// AwaitJob polls jobID every interval until the job leaves "pending",
	// the context is cancelled, or maxWait elapses.
	AwaitJob(ctx context.Context, jobID string, interval, maxWait time.Duration) (*models.ImportJob, error)
}

// Hasher produces salted password hashes in the format the identity
// platform accepts.
type Hasher interface {
	Hash(password string) (string, error)
}
