package payload

const (
	// Error messages for payload serialization
	ErrEmptyBatch      = "import batch is empty"
	ErrMarshalFailed   = "failed to serialize import batch"
	ErrUnmarshalFailed = "failed to parse import payload"
	ErrWriteFailed     = "failed to write payload file"
)
