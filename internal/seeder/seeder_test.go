package seeder

import (
	"context"
	"testing"
	"time"

	"github.com/haguru/shisui/internal/generator"
	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/interfaces/mocks"
	"github.com/haguru/shisui/internal/models"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed(" + password + ")", nil
}

func validRequest() Request {
	return Request{
		Prefix:         "imfake",
		EmailDomain:    "test.edu",
		Count:          1,
		Password:       "s3cret",
		ConnectionName: "Username-Password-Authentication",
		Token:          "opaque-test-token",
		PollInterval:   time.Millisecond,
		MaxWait:        time.Second,
	}
}

func newTestSeeder(directory *mocks.Directory, ledger interfaces.RunLedger) *Seeder {
	gen := generator.NewGenerator(stubHasher{}, false)
	return NewSeeder(gen, directory, ledger, mocks.NopLogger{}, nil, structValidator.New())
}

func TestSeeder_Run_Completed(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, "Username-Password-Authentication").
		Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, "con_123", mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusPending}, nil)
	directory.On("AwaitJob", mock.Anything, "job_1", time.Millisecond, time.Second).
		Return(&models.ImportJob{
			ID:      "job_1",
			Status:  models.JobStatusCompleted,
			Summary: map[string]interface{}{"total": float64(1), "inserted": float64(1)},
		}, nil)

	s := newTestSeeder(directory, nil)
	result, err := s.Run(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, "job_1", result.Job.ID)
	assert.Equal(t, models.JobStatusCompleted, result.Job.Status)
	assert.Equal(t, "con_123", result.ConnectionID)
	assert.Equal(t, 1, result.RecordCount)
	assert.Equal(t, models.JobSummary{Total: 1, Inserted: 1}, result.Summary)
	directory.AssertExpectations(t)
}

func TestSeeder_Run_SubmitsPayloadAndFileName(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, "con_123",
		models.SubmitOptions{FileName: "imfake_users.json"}).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusPending}, nil)
	directory.On("AwaitJob", mock.Anything, "job_1", mock.Anything, mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusCompleted}, nil)

	s := newTestSeeder(directory, nil)
	_, err := s.Run(context.Background(), validRequest())

	assert.NoError(t, err)
	payloadArg := directory.Calls[1].Arguments.Get(1).([]byte)
	assert.Contains(t, string(payloadArg), `"username": "imfake_01"`)
	assert.Contains(t, string(payloadArg), `"email": "imfake_01@test.edu"`)
	assert.Contains(t, string(payloadArg), `"password_hash": "hashed(s3cret)"`)
	assert.NotContains(t, string(payloadArg), `"password_hash": "s3cret"`)
}

func TestSeeder_Run_ExternalIDForwarded(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, "con_123",
		models.SubmitOptions{FileName: "imfake_users.json", ExternalID: "run-42"}).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusPending}, nil)
	directory.On("AwaitJob", mock.Anything, "job_1", mock.Anything, mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusCompleted}, nil)

	s := newTestSeeder(directory, nil)
	req := validRequest()
	req.ExternalID = "run-42"
	_, err := s.Run(context.Background(), req)

	assert.NoError(t, err)
	directory.AssertExpectations(t)
}

func TestSeeder_Run_RecordsLedgerEntry(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusPending}, nil)
	directory.On("AwaitJob", mock.Anything, "job_1", mock.Anything, mock.Anything).
		Return(&models.ImportJob{
			ID:      "job_1",
			Status:  models.JobStatusFailed,
			Summary: map[string]interface{}{"failed": float64(1)},
		}, nil)

	ledger := &mocks.RunLedger{}
	ledger.On("Record", mock.Anything, mock.MatchedBy(func(entry models.RunEntry) bool {
		return entry.JobID == "job_1" &&
			entry.Status == models.JobStatusFailed &&
			entry.ConnectionID == "con_123" &&
			entry.RecordCount == 1 &&
			entry.Summary.Failed == 1
	})).Return("ledger_1", nil)

	s := newTestSeeder(directory, ledger)
	result, err := s.Run(context.Background(), validRequest())

	assert.NoError(t, err)
	assert.Equal(t, "ledger_1", result.LedgerID)
	ledger.AssertExpectations(t)
}

func TestSeeder_Run_ConnectionNotFound(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).
		Return("", assert.AnError)

	s := newTestSeeder(directory, nil)
	_, err := s.Run(context.Background(), validRequest())

	assert.ErrorContains(t, err, ErrFailedToResolve)
	directory.AssertNotCalled(t, "SubmitImport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSeeder_Run_SubmitErrorHaltsRun(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	s := newTestSeeder(directory, nil)
	_, err := s.Run(context.Background(), validRequest())

	assert.ErrorContains(t, err, ErrFailedToSubmit)
	directory.AssertNotCalled(t, "AwaitJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSeeder_Run_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing prefix", mutate: func(r *Request) { r.Prefix = "" }},
		{name: "missing email domain", mutate: func(r *Request) { r.EmailDomain = "" }},
		{name: "zero count", mutate: func(r *Request) { r.Count = 0 }},
		{name: "missing connection name", mutate: func(r *Request) { r.ConnectionName = "" }},
		{name: "missing token", mutate: func(r *Request) { r.Token = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := &mocks.Directory{}
			s := newTestSeeder(directory, nil)

			req := validRequest()
			tt.mutate(&req)
			_, err := s.Run(context.Background(), req)

			assert.ErrorContains(t, err, ErrInvalidRequest)
			directory.AssertNotCalled(t, "ResolveConnection", mock.Anything, mock.Anything)
		})
	}
}

func TestSeeder_Run_DebugPayloadFile(t *testing.T) {
	directory := &mocks.Directory{}
	directory.On("ResolveConnection", mock.Anything, mock.Anything).Return("con_123", nil)
	directory.On("SubmitImport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusPending}, nil)
	directory.On("AwaitJob", mock.Anything, "job_1", mock.Anything, mock.Anything).
		Return(&models.ImportJob{ID: "job_1", Status: models.JobStatusCompleted}, nil)

	s := newTestSeeder(directory, nil)
	req := validRequest()
	req.PayloadDir = t.TempDir()
	result, err := s.Run(context.Background(), req)

	assert.NoError(t, err)
	assert.FileExists(t, result.PayloadPath)
}
