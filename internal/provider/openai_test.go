package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAISuccessBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o-mini",
  "choices": [
    {"index": 0, "message": {"role": "assistant", "content": "generated text"}, "finish_reason": "stop"}
  ]
}`

func TestOpenAITransport_Generate_Success(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusOK, openAISuccessBody)
	transport := NewOpenAITransport(WithBaseURL(endpoint.URL() + "/v1"))

	text, err := transport.Generate(context.Background(),
		Prompt{System: "be brief", User: "hello"},
		Credentials{APIKey: "sk-test", Model: "gpt-4o-mini"})

	require.NoError(t, err)
	assert.Equal(t, "generated text", text)

	req := endpoint.LastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/chat/completions", req.Path)
	assert.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
	assert.Equal(t, "gpt-4o-mini", req.Body["model"])
	assert.InDelta(t, 0.7, req.Body["temperature"], 1e-9)
	assert.EqualValues(t, 2000, req.Body["max_tokens"])

	messages, ok := req.Body["messages"].([]any)
	require.True(t, ok, "messages should be an array")
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, "be brief", system["content"])
	user := messages[1].(map[string]any)
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "hello", user["content"])
}

func TestOpenAITransport_Generate_NoSystemMessage(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusOK, openAISuccessBody)
	transport := NewOpenAITransport(WithBaseURL(endpoint.URL() + "/v1"))

	_, err := transport.Generate(context.Background(), Prompt{User: "only user"},
		Credentials{APIKey: "sk-test", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	messages := endpoint.LastRequest(t).Body["messages"].([]any)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
}

func TestOpenAITransport_Generate_ProviderErrorMessage(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusUnauthorized,
		`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "param": null, "code": "invalid_api_key"}}`)
	transport := NewOpenAITransport(WithBaseURL(endpoint.URL() + "/v1"))

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
		Credentials{APIKey: "bad", Model: "gpt-4o-mini"})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr), "expected *ProviderError, got %v", err)
	assert.Equal(t, OpenAI, providerErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, providerErr.HTTPStatus)
	assert.Equal(t, "Incorrect API key provided", providerErr.Message)
	assert.ErrorIs(t, err, ErrProviderFailed)
}

func TestOpenAITransport_Generate_NoRetry(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusInternalServerError,
		`{"error": {"message": "upstream exploded", "type": "server_error", "param": null, "code": null}}`)
	transport := NewOpenAITransport(WithBaseURL(endpoint.URL() + "/v1"))

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
		Credentials{APIKey: "sk-test", Model: "gpt-4o-mini"})

	require.Error(t, err)
	assert.Equal(t, 1, endpoint.Hits())
}

func TestOpenAITransport_Generate_EmptyChoices(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusOK,
		`{"id": "chatcmpl-2", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini", "choices": []}`)
	transport := NewOpenAITransport(WithBaseURL(endpoint.URL() + "/v1"))

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
		Credentials{APIKey: "sk-test", Model: "gpt-4o-mini"})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "empty response", providerErr.Message)
}

func TestOpenAITransport_Generate_MissingKey(t *testing.T) {
	transport := NewOpenAITransport()

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"}, Credentials{Model: "gpt-4o-mini"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
