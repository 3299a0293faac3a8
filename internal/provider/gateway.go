package provider

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 60 * time.Second

// Gateway routes prompts to the transport registered for a provider.
type Gateway struct {
	transports map[ID]Transport
	timeout    time.Duration
	logger     *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithTransport registers (or replaces) the transport for a provider.
func WithTransport(id ID, transport Transport) GatewayOption {
	return func(g *Gateway) {
		g.transports[id] = transport
	}
}

// WithTimeout sets the per-call deadline. Zero disables it.
func WithTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a gateway with the three production transports
// registered against their public endpoints.
func NewGateway(opts ...GatewayOption) *Gateway {
	g := &Gateway{
		transports: map[ID]Transport{
			OpenAI:    NewOpenAITransport(),
			Anthropic: NewAnthropicTransport(),
			Gemini:    NewGeminiTransport(),
		},
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dispatch sends the prompt through the transport selected by cfg.Provider.
// An unknown provider fails before any network I/O.
func (g *Gateway) Dispatch(ctx context.Context, prompt Prompt, cfg Config) (string, error) {
	transport, ok := g.transports[cfg.Provider]
	if !ok {
		return "", &UnsupportedProviderError{Provider: string(cfg.Provider)}
	}

	creds := cfg.Credentials()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.logger.DebugContext(ctx, "Dispatching prompt",
		"provider", cfg.Provider,
		"model", creds.Model,
		"system_length", len(prompt.System),
		"prompt_length", len(prompt.User))

	start := time.Now()
	text, err := transport.Generate(ctx, prompt, creds)
	if err != nil {
		g.logger.WarnContext(ctx, "Provider call failed",
			"provider", cfg.Provider,
			"model", creds.Model,
			"duration", time.Since(start),
			"error", err)
		return "", err
	}

	g.logger.InfoContext(ctx, "Provider call succeeded",
		"provider", cfg.Provider,
		"model", creds.Model,
		"duration", time.Since(start),
		"response_length", len(text))

	return text, nil
}
