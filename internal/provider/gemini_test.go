package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiTransport_Generate_Success(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusOK,
		`{"candidates": [{"content": {"role": "model", "parts": [{"text": "gemini output"}]}, "finishReason": "STOP"}]}`)
	transport := NewGeminiTransport(WithBaseURL(endpoint.URL()))

	text, err := transport.Generate(context.Background(),
		Prompt{System: "system rules", User: "user question"},
		Credentials{APIKey: "gk-test", Model: "gemini-test"})

	require.NoError(t, err)
	assert.Equal(t, "gemini output", text)

	req := endpoint.LastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.True(t, strings.HasSuffix(req.Path, "/v1beta/models/gemini-test:generateContent"), "unexpected path %s", req.Path)
	assert.Equal(t, "gk-test", req.Query.Get("key"))
	assert.NotContains(t, req.Body, "systemInstruction")

	contents := req.Body["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "system rules\n\nuser question", parts[0].(map[string]any)["text"])

	generationConfig := req.Body["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.7, generationConfig["temperature"], 1e-6)
	assert.EqualValues(t, 2000, generationConfig["maxOutputTokens"])
}

func TestGeminiTransport_Generate_EmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty array", body: `{"candidates": []}`},
		{name: "absent", body: `{"promptFeedback": {"blockReason": "SAFETY"}}`},
		{name: "no parts", body: `{"candidates": [{"content": {"role": "model", "parts": []}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := newFakeEndpoint(t, http.StatusOK, tt.body)
			transport := NewGeminiTransport(WithBaseURL(endpoint.URL()))

			_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
				Credentials{APIKey: "gk-test", Model: "gemini-test"})

			var providerErr *ProviderError
			require.True(t, errors.As(err, &providerErr), "expected *ProviderError, got %v", err)
			assert.Equal(t, Gemini, providerErr.Provider)
			assert.Equal(t, "empty response", providerErr.Message)
		})
	}
}

func TestGeminiTransport_Generate_ProviderErrorMessage(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusBadRequest,
		`{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT"}}`)
	transport := NewGeminiTransport(WithBaseURL(endpoint.URL()))

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
		Credentials{APIKey: "bad", Model: "gemini-test"})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr), "expected *ProviderError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, providerErr.HTTPStatus)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", providerErr.Message)
	assert.Equal(t, 1, endpoint.Hits())
}

func TestGeminiTransport_Generate_KeyQueryWithCustomClient(t *testing.T) {
	endpoint := newFakeEndpoint(t, http.StatusOK,
		`{"candidates": [{"content": {"role": "model", "parts": [{"text": "ok"}]}}]}`)
	transport := NewGeminiTransport(WithBaseURL(endpoint.URL()), WithHTTPClient(&http.Client{}))

	_, err := transport.Generate(context.Background(), Prompt{User: "hello"},
		Credentials{APIKey: "gk-custom", Model: "gemini-test"})

	require.NoError(t, err)
	assert.Equal(t, "gk-custom", endpoint.LastRequest(t).Query.Get("key"))
}

func TestWithKeyQuery_DoesNotMutateCallerClient(t *testing.T) {
	client := &http.Client{}

	wrapped := withKeyQuery(client, "k")

	assert.Nil(t, client.Transport)
	assert.NotSame(t, client, wrapped)
	assert.IsType(t, &keyQueryTransport{}, wrapped.Transport)
}
