package client

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all vision backends.
var (
	// ErrModelUnavailable indicates the backend rejected the credential or
	// no credential was configured at all.
	ErrModelUnavailable = errors.New("vision model unavailable")

	// ErrEmptyResponse indicates the backend answered but returned no text.
	ErrEmptyResponse = errors.New("empty response from vision model")
)

// TransportError wraps a network or protocol failure while calling a
// vision backend.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a TransportError for the given provider.
func NewTransportError(provider string, err error) *TransportError {
	return &TransportError{Provider: provider, Err: err}
}
