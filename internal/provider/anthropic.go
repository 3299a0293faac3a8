package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicTransport speaks the messages protocol.
type AnthropicTransport struct {
	opts transportOptions
}

// NewAnthropicTransport creates a messages transport.
func NewAnthropicTransport(opts ...TransportOption) *AnthropicTransport {
	return &AnthropicTransport{opts: buildTransportOptions(opts)}
}

// Generate sends the user prompt as a single message with the system
// instruction in the dedicated system field.
func (a *AnthropicTransport) Generate(ctx context.Context, prompt Prompt, creds Credentials) (string, error) {
	if err := checkCredentials(Anthropic, creds); err != nil {
		return "", err
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(creds.APIKey),
		option.WithMaxRetries(0),
	}
	if a.opts.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(a.opts.baseURL))
	}
	if a.opts.httpClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(a.opts.httpClient))
	}
	client := anthropic.NewClient(requestOpts...)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(creds.Model),
		MaxTokens: MaxOutputTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User)),
		},
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}

	message, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", anthropicError(err)
	}

	if len(message.Content) == 0 {
		return "", emptyResponse(Anthropic)
	}

	return message.Content[0].Text, nil
}

// anthropicErrorBody is the provider's error envelope.
type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		message := http.StatusText(apiErr.StatusCode)
		var body anthropicErrorBody
		if jsonErr := json.Unmarshal([]byte(apiErr.RawJSON()), &body); jsonErr == nil && body.Error.Message != "" {
			message = body.Error.Message
		}
		return &ProviderError{Provider: Anthropic, HTTPStatus: apiErr.StatusCode, Message: message, Err: err}
	}
	return &ProviderError{Provider: Anthropic, Message: err.Error(), Err: err}
}
