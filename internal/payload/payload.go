package payload

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haguru/shisui/internal/models"
)

// FileMode restricts the debug payload file to the owner: it contains
// password hashes and must not be world readable.
const FileMode = 0o600

// Marshal serializes an ImportBatch to the JSON array the import
// endpoint accepts. The preferred path is to stream these bytes straight
// into the upload; writing them to disk is a debugging aid only.
func Marshal(batch models.ImportBatch) ([]byte, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("%s", ErrEmptyBatch)
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMarshalFailed, err)
	}

	return data, nil
}

// Unmarshal parses a serialized payload back into an ImportBatch.
func Unmarshal(data []byte) (models.ImportBatch, error) {
	var batch models.ImportBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrUnmarshalFailed, err)
	}
	return batch, nil
}

// FileName returns the conventional payload file name for a prefix.
func FileName(prefix string) string {
	return prefix + "_users.json"
}

// WriteFile persists the serialized batch to {dir}/{prefix}_users.json
// and returns the path. The file contains sensitive material (password
// hashes); keep it out of version control and delete it when done.
func WriteFile(batch models.ImportBatch, dir, prefix string) (string, error) {
	data, err := Marshal(batch)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName(prefix))
	if err := os.WriteFile(path, data, FileMode); err != nil {
		return "", fmt.Errorf("%s %s: %w", ErrWriteFailed, path, err)
	}

	return path, nil
}
