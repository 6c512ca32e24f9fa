package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/shisui/internal/auth"
	"github.com/haguru/shisui/internal/generator"
	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/models"
	"github.com/haguru/shisui/internal/payload"
	"github.com/haguru/shisui/pkg/helper"

	structValidator "github.com/go-playground/validator/v10"
)

// Request describes one seeding run.
type Request struct {
	Prefix         string `validate:"required"`
	EmailDomain    string `validate:"required"`
	Count          int    `validate:"min=1"`
	Password       string
	ConnectionName string `validate:"required"`
	Token          string `validate:"required"`
	PollInterval   time.Duration
	MaxWait        time.Duration
	// ExternalID is forwarded to the submission as idempotency key when set.
	ExternalID string
	// PayloadDir, when set, additionally writes the payload to disk for
	// debugging. The preferred path keeps it in memory only.
	PayloadDir string
}

// Result is the outcome of a completed (terminal) seeding run.
type Result struct {
	Job          *models.ImportJob
	Summary      models.JobSummary
	ConnectionID string
	RecordCount  int
	PayloadPath  string
	LedgerID     string
}

// Seeder drives the full pipeline: generate records, serialize them,
// resolve the target connection, submit the import and await its
// terminal state. Each step failure halts the run; nothing is retried.
type Seeder struct {
	Generator *generator.Generator
	Directory interfaces.Directory
	Ledger    interfaces.RunLedger
	Logger    interfaces.Logger
	Metrics   interfaces.Metrics
	validator *structValidator.Validate
}

// NewSeeder creates a new Seeder instance. Ledger may be nil when the
// run ledger is disabled.
func NewSeeder(gen *generator.Generator, directory interfaces.Directory, ledger interfaces.RunLedger,
	logger interfaces.Logger, metrics interfaces.Metrics, validator *structValidator.Validate,
) *Seeder {
	return &Seeder{
		Generator: gen,
		Directory: directory,
		Ledger:    ledger,
		Logger:    logger,
		Metrics:   metrics,
		validator: validator,
	}
}

// Run executes one seeding run to its terminal state.
func (s *Seeder) Run(ctx context.Context, req Request) (*Result, error) {
	funcName := helper.GetFuncName()
	startedAt := time.Now()

	if err := s.validator.Struct(req); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("%s: %s", ErrInvalidRequest, errors)
	}

	if err := s.inspectCredential(req.Token); err != nil {
		return nil, err
	}

	batch, err := s.Generator.Generate(req.Prefix, req.EmailDomain, req.Count, req.Password)
	if err != nil {
		s.Logger.Error(ErrFailedToGenerate, "func", funcName, "prefix", req.Prefix, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToGenerate, err)
	}
	s.Logger.Info(MsgGeneratedRecords, "func", funcName, "prefix", req.Prefix, "count", len(batch))
	if s.Metrics != nil {
		s.Metrics.SetGauge(RecordsGenerated, float64(len(batch)))
	}

	data, err := payload.Marshal(batch)
	if err != nil {
		s.Logger.Error(ErrFailedToSerialize, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSerialize, err)
	}

	result := &Result{RecordCount: len(batch)}

	if req.PayloadDir != "" {
		path, err := payload.WriteFile(batch, req.PayloadDir, req.Prefix)
		if err != nil {
			s.Logger.Error(ErrFailedToWritePayload, "func", funcName, "error", err)
			return nil, fmt.Errorf("%s: %w", ErrFailedToWritePayload, err)
		}
		s.Logger.Warn(MsgDebugPayloadWritten, "func", funcName, "path", path)
		result.PayloadPath = path
	}

	connectionID, err := s.Directory.ResolveConnection(ctx, req.ConnectionName)
	if err != nil {
		s.Logger.Error(ErrFailedToResolve, "func", funcName, "connection", req.ConnectionName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToResolve, err)
	}
	s.Logger.Info(MsgResolvedConnection, "func", funcName, "connection", req.ConnectionName, "id", connectionID)
	result.ConnectionID = connectionID

	s.Logger.Info(MsgSubmittingImport, "func", funcName, "connection", connectionID, "records", len(batch), "external_id", req.ExternalID)
	job, err := s.Directory.SubmitImport(ctx, data, connectionID, models.SubmitOptions{
		FileName:   payload.FileName(req.Prefix),
		ExternalID: req.ExternalID,
	})
	if err != nil {
		s.Logger.Error(ErrFailedToSubmit, "func", funcName, "connection", connectionID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToSubmit, err)
	}

	s.Logger.Info(MsgAwaitingJob, "func", funcName, "job", job.ID, "interval", req.PollInterval, "max_wait", req.MaxWait)
	job, err = s.Directory.AwaitJob(ctx, job.ID, req.PollInterval, req.MaxWait)
	if err != nil {
		s.Logger.Error(ErrFailedToAwait, "func", funcName, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToAwait, err)
	}
	result.Job = job

	summary, err := job.DecodeSummary()
	if err != nil {
		s.Logger.Error(ErrFailedToDecodeSummary, "func", funcName, "job", job.ID, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToDecodeSummary, err)
	}
	result.Summary = summary

	if s.Metrics != nil {
		s.Metrics.IncCounterVec(ImportRunsTotal, job.Status)
		s.Metrics.ObserveHistogram(RunDurationSeconds, time.Since(startedAt).Seconds())
	}

	if err := s.record(ctx, req, result, startedAt); err != nil {
		return nil, err
	}

	s.Logger.Info(MsgRunCompleted, "func", funcName, "job", job.ID, "status", job.Status,
		"inserted", summary.Inserted, "failed", summary.Failed)
	return result, nil
}

// inspectCredential fails fast on a token that is visibly expired or
// under-scoped, before any remote state is mutated.
func (s *Seeder) inspectCredential(token string) error {
	funcName := helper.GetFuncName()

	info, err := auth.InspectToken(token)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFailedToInspectToken, err)
	}

	if info.Opaque {
		s.Logger.Warn(MsgOpaqueToken, "func", funcName, "token", helper.MaskSecret(token))
		return nil
	}

	if info.Expired(time.Now()) {
		s.Logger.Error(ErrExpiredToken, "func", funcName, "expired_at", info.ExpiresAt)
		return fmt.Errorf("%s (expired %s)", ErrExpiredToken, info.ExpiresAt)
	}

	if missing := info.MissingScopes(); len(missing) > 0 {
		s.Logger.Error(ErrTokenMissingScopes, "func", funcName, "missing", missing)
		return fmt.Errorf("%s: %v", ErrTokenMissingScopes, missing)
	}

	return nil
}

// record writes the run entry to the ledger when one is configured.
func (s *Seeder) record(ctx context.Context, req Request, result *Result, startedAt time.Time) error {
	funcName := helper.GetFuncName()

	if s.Ledger == nil {
		s.Logger.Debug(MsgLedgerDisabled, "func", funcName)
		return nil
	}

	entry := models.RunEntry{
		JobID:          result.Job.ID,
		ConnectionID:   result.ConnectionID,
		ConnectionName: req.ConnectionName,
		Prefix:         req.Prefix,
		RecordCount:    result.RecordCount,
		Status:         result.Job.Status,
		Summary:        result.Summary,
		StartedAt:      startedAt,
		FinishedAt:     time.Now(),
	}

	ledgerID, err := s.Ledger.Record(ctx, entry)
	if err != nil {
		s.Logger.Error(ErrFailedToRecordRun, "func", funcName, "job", result.Job.ID, "error", err)
		return fmt.Errorf("%s: %w", ErrFailedToRecordRun, err)
	}

	s.Logger.Info(MsgRunRecorded, "func", funcName, "job", result.Job.ID, "ledger_id", ledgerID)
	result.LedgerID = ledgerID
	return nil
}
