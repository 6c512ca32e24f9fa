package management

import "time"

const (
	// Management API paths
	ConnectionsPath = "/api/v2/connections"
	ImportsPath     = "/api/v2/jobs/users-imports"
	JobsPath        = "/api/v2/jobs/"

	// ConnectionStrategy is the fixed strategy tag the connection listing
	// is filtered by.
	ConnectionStrategy = "auth0"

	// Multipart form field names for import submission
	UsersField               = "users"
	ConnectionIDField        = "connection_id"
	SendCompletionEmailField = "send_completion_email"
	ExternalIDField          = "external_id"

	// DefaultPayloadFileName is used when the caller does not name the
	// uploaded payload part.
	DefaultPayloadFileName = "users.json"

	// DefaultPollInterval is the wait between job status polls.
	DefaultPollInterval = 5 * time.Second
	// DefaultMaxWait bounds how long AwaitJob will poll before giving up.
	DefaultMaxWait = 10 * time.Minute

	// RequestTimeout bounds a single management API request.
	RequestTimeout = 30 * time.Second
	// DefaultRequestsPerSecond is the client-side rate limit applied to
	// management API calls.
	DefaultRequestsPerSecond = 2
)

var (
	SubmitDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// metrics constants
	APIRequestsTotal          = "management_api_requests_total"
	APIRequestsTotalHelp      = "Total number of management API requests by operation and outcome"
	PollAttemptsTotal         = "import_poll_attempts_total"
	PollAttemptsTotalHelp     = "Total number of job status polls issued"
	SubmitDurationSeconds     = "import_submit_duration_seconds"
	SubmitDurationSecondsHelp = "Duration of import submissions in seconds"

	// metrics label values
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

const (
	// Error messages for management API operations
	ErrFailedToBuildRequest  = "failed to build request"
	ErrRequestFailed         = "request failed"
	ErrFailedToDecodeBody    = "failed to decode response body"
	ErrFailedToBuildPayload  = "failed to build multipart payload"
	ErrRateLimiterWait       = "rate limiter wait aborted"
	ErrPollTimedOut          = "job polling timed out"
	ErrEmptyJobID            = "job id must not be empty"
	ErrEmptyConnectionName   = "connection name must not be empty"
	ErrSubmitRejected        = "import submission rejected"
	ErrJobMissingID          = "job descriptor has no id"
	ErrEmptyConnectionTarget = "connection id must not be empty"
)
