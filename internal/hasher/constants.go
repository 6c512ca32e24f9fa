package hasher

const (
	// Error messages for hashing operations
	ErrEmptyPassword        = "password must not be empty" // #nosec G101
	ErrFailedToHashPassword = "failed to hash password"    // #nosec G101
)
