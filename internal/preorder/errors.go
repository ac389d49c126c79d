package preorder

import (
	"errors"
	"fmt"
)

// ErrPending is returned when a submission is attempted while another is
// still in flight.
var ErrPending = errors.New("a submission is already in progress")

// ValidationError rejects input. Field is empty when the server did not
// name one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is any non-validation failure reported by the server.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Message is the text shown to the customer for err.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return failedToSubmit
	}
	return err.Error()
}
