package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiAPIVersion is the generateContent API version.
const geminiAPIVersion = "v1beta"

// GeminiTransport speaks the generateContent protocol. The protocol has no
// system field here, so system instructions are prepended to the user text.
type GeminiTransport struct {
	opts transportOptions
}

// NewGeminiTransport creates a generateContent transport.
func NewGeminiTransport(opts ...TransportOption) *GeminiTransport {
	return &GeminiTransport{opts: buildTransportOptions(opts)}
}

// Generate sends a single-content request.
func (g *GeminiTransport) Generate(ctx context.Context, prompt Prompt, creds Credentials) (string, error) {
	if err := checkCredentials(Gemini, creds); err != nil {
		return "", err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     creds.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: withKeyQuery(g.opts.httpClient, creds.APIKey),
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.opts.baseURL,
			APIVersion: geminiAPIVersion,
		},
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", &ProviderError{
			Provider: Gemini,
			Message:  fmt.Sprintf("failed to create client: %v", err),
			Err:      fmt.Errorf("%w: %w", ErrInvalidConfig, err),
		}
	}

	text := prompt.User
	if prompt.System != "" {
		text = prompt.System + "\n\n" + prompt.User
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](Temperature),
		MaxOutputTokens: MaxOutputTokens,
	}

	resp, err := client.Models.GenerateContent(ctx, creds.Model, genai.Text(text), config)
	if err != nil {
		return "", geminiError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", emptyResponse(Gemini)
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 || candidate.Content.Parts[0] == nil {
		return "", emptyResponse(Gemini)
	}

	return candidate.Content.Parts[0].Text, nil
}

// keyQueryTransport adds the API key as the "key" query parameter, the
// generateContent endpoint's documented authentication.
type keyQueryTransport struct {
	base http.RoundTripper
	key  string
}

func (t *keyQueryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	query := clone.URL.Query()
	query.Set("key", t.key)
	clone.URL.RawQuery = query.Encode()
	return t.base.RoundTrip(clone)
}

// withKeyQuery returns a copy of client whose requests carry the key query
// parameter. A nil client starts from http.DefaultTransport.
func withKeyQuery(client *http.Client, key string) *http.Client {
	wrapped := &http.Client{}
	if client != nil {
		*wrapped = *client
	}
	base := wrapped.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = &keyQueryTransport{base: base, key: key}
	return wrapped
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.Code)
		}
		return &ProviderError{Provider: Gemini, HTTPStatus: apiErr.Code, Message: message, Err: err}
	}
	return &ProviderError{Provider: Gemini, Message: err.Error(), Err: err}
}
