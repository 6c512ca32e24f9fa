package generator

import (
	"fmt"

	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/models"
)

// Generator produces synthetic user records with hashed passwords.
type Generator struct {
	hasher interfaces.Hasher
	// allowUsernamePasswords enables the password-equals-username default.
	// That default is only suitable for throwaway test accounts and must
	// be opted into explicitly via configuration.
	allowUsernamePasswords bool
}

// NewGenerator creates a Generator. Passwords are hashed through the
// given hasher; plaintext never leaves this package.
func NewGenerator(hasher interfaces.Hasher, allowUsernamePasswords bool) *Generator {
	return &Generator{
		hasher:                 hasher,
		allowUsernamePasswords: allowUsernamePasswords,
	}
}

// Generate produces count records with usernames {prefix}_{index},
// indices 1..count, zero-padded to the width of count (minimum two
// digits), and emails {username}@{domain}. An empty password falls back
// to the username itself only when the generator was built with
// allowUsernamePasswords.
func (g *Generator) Generate(prefix, domain string, count int, password string) (models.ImportBatch, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%s", ErrEmptyPrefix)
	}
	if domain == "" {
		return nil, fmt.Errorf("%s", ErrEmptyDomain)
	}
	if count < 1 {
		return nil, fmt.Errorf("%s: %d", ErrInvalidCount, count)
	}

	width := padWidth(count)
	batch := make(models.ImportBatch, 0, count)
	for i := 1; i <= count; i++ {
		record, err := g.generate(prefix, domain, i, width, password)
		if err != nil {
			return nil, err
		}
		batch = append(batch, record)
	}

	return batch, nil
}

// GenerateOne produces the single record at the given index. The pad
// width is derived from the index itself since no batch size is known.
func (g *Generator) GenerateOne(prefix, domain string, index int, password string) (models.UserRecord, error) {
	if prefix == "" {
		return models.UserRecord{}, fmt.Errorf("%s", ErrEmptyPrefix)
	}
	if domain == "" {
		return models.UserRecord{}, fmt.Errorf("%s", ErrEmptyDomain)
	}
	if index < 1 {
		return models.UserRecord{}, fmt.Errorf("%s: %d", ErrInvalidCount, index)
	}

	return g.generate(prefix, domain, index, padWidth(index), password)
}

func (g *Generator) generate(prefix, domain string, index, width int, password string) (models.UserRecord, error) {
	username := fmt.Sprintf("%s_%0*d", prefix, width, index)

	if password == "" {
		if !g.allowUsernamePasswords {
			return models.UserRecord{}, fmt.Errorf("%s", ErrNoPassword)
		}
		password = username
	}

	hash, err := g.hasher.Hash(password)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%s %q: %w", ErrFailedToHash, username, err)
	}

	return models.NewUserRecord(username, domain, hash), nil
}

// padWidth returns the zero-pad width for sequence numbers: two digits
// up to 99, growing with the batch size beyond that.
func padWidth(count int) int {
	width := 2
	for n := count; n > 99; n /= 10 {
		width++
	}
	return width
}
