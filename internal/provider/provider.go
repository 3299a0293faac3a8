// Package provider speaks the wire protocols of the supported generative-text
// services behind one Transport interface. A Gateway maps the closed set of
// provider identifiers to transports and is the single dispatch point the
// rest of the module calls through. Transports are stateless: every call
// builds its client from the credentials it is given.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ID identifies a supported provider.
type ID string

const (
	OpenAI    ID = "openai"
	Anthropic ID = "anthropic"
	Gemini    ID = "gemini"
)

// Generation parameters shared by every provider. They are fixed and not
// configurable by callers.
const (
	Temperature     = 0.7
	MaxOutputTokens = 2000
)

// IDs lists the supported providers in a stable order.
func IDs() []ID {
	return []ID{OpenAI, Anthropic, Gemini}
}

// ParseID converts a configured provider name into an ID.
func ParseID(name string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range IDs() {
		if id == known {
			return id, nil
		}
	}
	return "", &UnsupportedProviderError{Provider: name}
}

// DefaultModel returns the model used when a Config leaves Model empty.
func DefaultModel(id ID) string {
	switch id {
	case OpenAI:
		return "gpt-4o-mini"
	case Anthropic:
		return "claude-3-5-haiku-latest"
	case Gemini:
		return "gemini-1.5-flash"
	default:
		return ""
	}
}

// Config selects a provider and carries its credential. It is supplied by the
// caller on every call and never mutated.
type Config struct {
	// Provider is one of openai, anthropic or gemini
	Provider ID `json:"provider" validate:"required,oneof=openai anthropic gemini"`

	// APIKey is the opaque provider secret
	APIKey string `json:"apiKey" validate:"required"`

	// Model is provider specific; empty selects DefaultModel
	Model string `json:"model,omitempty"`
}

// Credentials returns the credential/model pair handed to a transport.
func (c Config) Credentials() Credentials {
	model := c.Model
	if model == "" {
		model = DefaultModel(c.Provider)
	}
	return Credentials{APIKey: c.APIKey, Model: model}
}

// String masks the API key so configs can be logged.
func (c Config) String() string {
	return fmt.Sprintf("%s/%s", c.Provider, c.Credentials().Model)
}

// Credentials is the per-call credential and model pair.
type Credentials struct {
	APIKey string
	Model  string
}

// Prompt is the uniform request every transport accepts.
type Prompt struct {
	// System holds optional instructions; providers without a system field
	// receive it prepended to User.
	System string

	// User is the prompt text
	User string
}

// Transport sends one prompt to one provider.
// Implementations must be stateless and safe for concurrent use.
type Transport interface {
	// Generate issues exactly one request and returns the generated text.
	// Failures are reported as *ProviderError; unusable credentials wrap
	// ErrInvalidConfig.
	Generate(ctx context.Context, prompt Prompt, creds Credentials) (string, error)
}

// TransportOption customizes the endpoint a transport talks to.
type TransportOption func(*transportOptions)

type transportOptions struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL points a transport at a non-default endpoint (tests, proxies).
func WithBaseURL(baseURL string) TransportOption {
	return func(o *transportOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(o *transportOptions) {
		o.httpClient = client
	}
}

func buildTransportOptions(opts []TransportOption) transportOptions {
	var o transportOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
