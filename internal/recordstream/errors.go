package recordstream

import (
	"errors"
	"fmt"
)

// Failure classes for record streams. Returned errors wrap one of these and the
// original cause, so both can be matched with errors.Is.
var (
	ErrSourceUnavailable = errors.New("record source unavailable")
	ErrMalformedInput    = errors.New("malformed record input")
	ErrIOFailure         = errors.New("record stream i/o failure")
)

// SourceUnavailable wraps an open/create failure for the named source.
func SourceUnavailable(name string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, name, err)
}

func malformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformedInput, err)
}

func ioFailure(err error) error {
	return fmt.Errorf("%w: %w", ErrIOFailure, err)
}

// IOFailure wraps a read, write or close failure of a record stream.
func IOFailure(err error) error {
	return ioFailure(err)
}
