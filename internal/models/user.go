package models

// UserRecord is a single user entry in a bulk import payload.
// The json field names are the wire format the import endpoint expects;
// they must not be changed.
type UserRecord struct {
	Email         string `json:"email" mapstructure:"email"`
	EmailVerified bool   `json:"email_verified" mapstructure:"email_verified"`
	PasswordHash  string `json:"password_hash" mapstructure:"password_hash"`
	Name          string `json:"name" mapstructure:"name"`
	Nickname      string `json:"nickname" mapstructure:"nickname"`
	Username      string `json:"username" mapstructure:"username"`
}

// ImportBatch is an ordered set of user records, written once and never
// mutated after creation.
type ImportBatch []UserRecord

// NewUserRecord creates a record for the given username, email domain and
// hashed password. Note: no validation is performed here.
func NewUserRecord(username, domain, passwordHash string) UserRecord {
	return UserRecord{
		Email:         username + "@" + domain,
		EmailVerified: true,
		PasswordHash:  passwordHash,
		Name:          username,
		Nickname:      username,
		Username:      username,
	}
}
