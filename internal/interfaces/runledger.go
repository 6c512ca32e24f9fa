package interfaces

import (
	"context"

	"github.com/haguru/shisui/internal/models"
)

// RunLedger defines the contract for recording completed import runs.
// This interface remains the same regardless of the backing store.
type RunLedger interface {
	Record(ctx context.Context, entry models.RunEntry) (string, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
