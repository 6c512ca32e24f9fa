package mocks

import (
	"context"

	"github.com/haguru/shisui/internal/models"

	"github.com/stretchr/testify/mock"
)

// RunLedger is a testify mock for the interfaces.RunLedger contract.
type RunLedger struct {
	mock.Mock
}

func (m *RunLedger) Record(ctx context.Context, entry models.RunEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *RunLedger) EnsureIndices(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RunLedger) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
