package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAITransport speaks the chat completions protocol.
type OpenAITransport struct {
	opts transportOptions
}

// NewOpenAITransport creates a chat-completions transport.
func NewOpenAITransport(opts ...TransportOption) *OpenAITransport {
	return &OpenAITransport{opts: buildTransportOptions(opts)}
}

// Generate sends the prompt as a system/user message pair.
func (o *OpenAITransport) Generate(ctx context.Context, prompt Prompt, creds Credentials) (string, error) {
	if err := checkCredentials(OpenAI, creds); err != nil {
		return "", err
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(creds.APIKey),
		option.WithMaxRetries(0),
	}
	if o.opts.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(o.opts.baseURL))
	}
	if o.opts.httpClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(o.opts.httpClient))
	}
	client := openai.NewClient(requestOpts...)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, openai.UserMessage(prompt.User))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(creds.Model),
		Messages:    messages,
		Temperature: openai.Float(Temperature),
		MaxTokens:   openai.Int(MaxOutputTokens),
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", openAIError(err)
	}

	if len(completion.Choices) == 0 {
		return "", emptyResponse(OpenAI)
	}

	return completion.Choices[0].Message.Content, nil
}

func openAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = http.StatusText(apiErr.StatusCode)
		}
		return &ProviderError{Provider: OpenAI, HTTPStatus: apiErr.StatusCode, Message: message, Err: err}
	}
	return &ProviderError{Provider: OpenAI, Message: err.Error(), Err: err}
}
