package relayclient

import (
	"errors"
	"fmt"
)

// TransportError is a relay call that produced no usable response.
// StatusCode is the remote status when headers arrived before the failure, else 0.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	ErrTimeout      = errors.New("relay: request timeout")
	ErrBodyTooLarge = errors.New("relay: response body too large")
	ErrInvalidURL   = errors.New("relay: invalid target URL")
)

func timeoutError(err error) error {
	return fmt.Errorf("%w: %v", ErrTimeout, err)
}
