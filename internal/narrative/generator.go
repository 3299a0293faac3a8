package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yates-Labs/storyline/internal/provider"
	"github.com/Yates-Labs/storyline/internal/story"
)

// Dispatcher sends one prompt to the configured provider.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt provider.Prompt, cfg provider.Config) (string, error)
}

// Generator builds prompts, invokes a provider and parses the result.
// It does not resolve images.
type Generator struct {
	dispatcher Dispatcher
}

// NewGenerator creates a generator on top of the given dispatcher.
func NewGenerator(dispatcher Dispatcher) *Generator {
	return &Generator{dispatcher: dispatcher}
}

// Stories generates story records for a browsing history.
func (g *Generator) Stories(ctx context.Context, urls []string, cfg provider.Config) ([]StoryRecord, error) {
	text, err := g.dispatch(ctx, StoriesPrompt(urls), cfg)
	if err != nil {
		return nil, err
	}
	return ParseStories(text)
}

// Chunks generates the chunk records expanding one story.
func (g *Generator) Chunks(ctx context.Context, s story.Story, cfg provider.Config) ([]ChunkRecord, error) {
	text, err := g.dispatch(ctx, ChunksPrompt(s), cfg)
	if err != nil {
		return nil, err
	}
	return ParseChunks(text)
}

// Reply generates a chat answer. The generated text is returned trimmed but
// otherwise unchanged.
func (g *Generator) Reply(ctx context.Context, message string, c story.ChatContext, cfg provider.Config) (string, error) {
	text, err := g.dispatch(ctx, ChatPrompt(message, c), cfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (g *Generator) dispatch(ctx context.Context, prompt provider.Prompt, cfg provider.Config) (string, error) {
	if g.dispatcher == nil {
		return "", fmt.Errorf("%w: dispatcher is required", ErrGenerationFailed)
	}
	return g.dispatcher.Dispatch(ctx, prompt, cfg)
}
