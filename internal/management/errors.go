package management

import (
	"errors"
	"fmt"
)

// ErrConnectionNotFound is returned when the connection listing contains
// no entry with the requested name.
var ErrConnectionNotFound = errors.New("connection not found")

// TransportError is a non-success response from the management API. It
// carries the status code and response body so failures can be diagnosed
// without re-issuing the call.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
