package provider

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrProviderFailed      = errors.New("provider request failed")
	ErrInvalidConfig       = errors.New("invalid provider configuration")
)

// UnsupportedProviderError reports a provider identifier outside the
// supported set.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedProvider, e.Provider)
}

func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// ProviderError is a transport-level failure: authentication, rate limits,
// network errors or a response without any generated text.
type ProviderError struct {
	Provider   ID
	HTTPStatus int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", ErrProviderFailed, e.Provider, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrProviderFailed, e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProviderFailed
}

// emptyResponse is returned when a provider answers without any candidate.
func emptyResponse(id ID) *ProviderError {
	return &ProviderError{Provider: id, Message: "empty response"}
}

// checkCredentials rejects a call that cannot be sent. The failure is a
// *ProviderError wrapping ErrInvalidConfig.
func checkCredentials(id ID, creds Credentials) error {
	switch {
	case creds.APIKey == "":
		return &ProviderError{Provider: id, Message: "missing API key", Err: ErrInvalidConfig}
	case creds.Model == "":
		return &ProviderError{Provider: id, Message: "missing model name", Err: ErrInvalidConfig}
	default:
		return nil
	}
}
