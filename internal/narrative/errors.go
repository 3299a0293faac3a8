package narrative

import (
	"errors"
	"fmt"
)

var (
	ErrGenerationFailed  = errors.New("narrative generation failed")
	ErrMalformedResponse = errors.New("malformed response")
)

// MalformedResponseError reports generated text that could not be turned into
// the expected records.
type MalformedResponseError struct {
	// Shape names what was being parsed ("stories" or "chunks")
	Shape string

	// Reason is a short human-readable explanation
	Reason string

	// Err is the underlying decode or validation error, if any
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrMalformedResponse, e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedResponse, e.Shape, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
