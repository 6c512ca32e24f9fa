package mocks

import (
	"context"
	"time"

	"github.com/haguru/shisui/internal/models"

	"github.com/stretchr/testify/mock"
)

// Directory is a testify mock for the interfaces.Directory contract.
type Directory struct {
	mock.Mock
}

func (m *Directory) ResolveConnection(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *Directory) SubmitImport(ctx context.Context, payload []byte, connectionID string, opts models.SubmitOptions) (*models.ImportJob, error) {
	args := m.Called(ctx, payload, connectionID, opts)
	if job := args.Get(0); job != nil {
		return job.(*models.ImportJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) GetJob(ctx context.Context, jobID string) (*models.ImportJob, error) {
	args := m.Called(ctx, jobID)
	if job := args.Get(0); job != nil {
		return job.(*models.ImportJob), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) AwaitJob(ctx context.Context, jobID string, interval, maxWait time.Duration) (*models.ImportJob, error) {
	args := m.Called(ctx, jobID, interval, maxWait)
	if job := args.Get(0); job != nil {
		return job.(*models.ImportJob), args.Error(1)
	}
	return nil, args.Error(1)
}
