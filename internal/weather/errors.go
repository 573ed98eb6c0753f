package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a forward or reverse geocode yields no match.
	ErrNotFound = errors.New("no matching location")
)

// TransportError wraps a network, status, or decode failure reaching a data
// source. Status is zero when the request never produced a response.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
