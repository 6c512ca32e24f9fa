package seeder

const (
	// Error messages for seeding runs
	ErrInvalidRequest         = "invalid seed request"
	ErrFailedToGenerate       = "failed to generate user records"
	ErrFailedToSerialize      = "failed to serialize import payload"
	ErrFailedToWritePayload   = "failed to write debug payload file"
	ErrFailedToResolve        = "failed to resolve connection"
	ErrFailedToSubmit         = "failed to submit import job"
	ErrFailedToAwait          = "failed while awaiting import job"
	ErrFailedToDecodeSummary  = "failed to decode job summary"
	ErrFailedToRecordRun      = "failed to record run in ledger"
	ErrExpiredToken           = "management token is expired"
	ErrTokenMissingScopes     = "management token is missing required scopes"
	ErrFailedToInspectToken   = "failed to inspect management token"
	MsgOpaqueToken            = "management token is not a JWT, skipping credential inspection"
	MsgRunCompleted           = "Seeding run completed"
	MsgRunRecorded            = "Run recorded in ledger"
	MsgLedgerDisabled         = "Run ledger disabled, skipping record"
	MsgDebugPayloadWritten    = "Debug payload written, file contains password hashes"
	MsgSubmittingImport       = "Submitting bulk import"
	MsgGeneratedRecords       = "Generated user records"
	MsgResolvedConnection     = "Resolved target connection"
	MsgAwaitingJob            = "Awaiting import job completion"

	// metrics constants
	RecordsGenerated        = "records_generated"
	RecordsGeneratedHelp    = "Number of user records generated in this run"
	ImportRunsTotal         = "import_runs_total"
	ImportRunsTotalHelp     = "Total number of seeding runs by terminal status"
	RunDurationSeconds      = "run_duration_seconds"
	RunDurationSecondsHelp  = "End-to-end duration of seeding runs in seconds"
)

var (
	RunDurationSecondsBuckets = []float64{1, 5, 15, 30, 60, 120, 300, 600}
)
