package generator

const (
	// Error messages for record generation
	ErrEmptyPrefix  = "username prefix must not be empty"
	ErrEmptyDomain  = "email domain must not be empty"
	ErrInvalidCount = "record count must be at least 1"
	ErrNoPassword   = "no password supplied and username passwords are not allowed" // #nosec G101
	ErrFailedToHash = "failed to hash password for"                                 // #nosec G101
)
