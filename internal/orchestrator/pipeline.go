// Package orchestrator runs the end-to-end content flows: prompt assembly,
// provider dispatch, parsing and image enrichment. It also provides the
// deterministic mock content used when no provider is configured.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Yates-Labs/storyline/internal/imagery"
	"github.com/Yates-Labs/storyline/internal/narrative"
	"github.com/Yates-Labs/storyline/internal/provider"
	"github.com/Yates-Labs/storyline/internal/story"
)

// DefaultImageConcurrency limits parallel image lookups per flow.
const DefaultImageConcurrency = 8

// ChatApology is the reply given when a configured provider fails.
const ChatApology = "I'm sorry, I couldn't come up with an answer right now. Please try again in a moment."

var (
	ErrEmptyHistory     = errors.New("browsing history is empty")
	ErrGenerationFailed = narrative.ErrGenerationFailed
)

// Pipeline orchestrates story, chunk and chat generation.
type Pipeline struct {
	generator   *narrative.Generator
	resolver    *imagery.Resolver
	concurrency int
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithImageConcurrency sets how many image lookups run at once.
func WithImageConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithClock replaces the clock used for Story.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline dispatching through dispatcher and resolving
// images with resolver. A nil resolver resolves every image to its fallback.
func NewPipeline(dispatcher narrative.Dispatcher, resolver *imagery.Resolver, opts ...Option) *Pipeline {
	if resolver == nil {
		resolver = imagery.NewResolver(nil)
	}
	p := &Pipeline{
		generator:   narrative.NewGenerator(dispatcher),
		resolver:    resolver,
		concurrency: DefaultImageConcurrency,
		now:         time.Now,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StoriesFromHistory groups browsing-history URLs into illustrated stories.
// The pipeline: prompt assembly -> provider dispatch -> parse -> images
func (p *Pipeline) StoriesFromHistory(ctx context.Context, urls []string, cfg provider.Config) ([]story.Story, error) {
	history := cleanHistory(urls)
	if len(history) == 0 {
		return nil, ErrEmptyHistory
	}

	log := p.flowLogger("stories", cfg)
	log.InfoContext(ctx, "Generating stories", "urls", len(history))

	records, err := p.generator.Stories(ctx, history, cfg)
	if err != nil {
		log.ErrorContext(ctx, "Story generation failed", "error", err)
		return nil, fmt.Errorf("%w: stories: %w", ErrGenerationFailed, err)
	}
	log.DebugContext(ctx, "Parsed stories", "count", len(records))

	keywords := make([]string, len(records))
	for i, r := range records {
		keywords[i] = r.ImageKeywords
	}
	images := p.resolveImages(ctx, keywords)

	createdAt := p.now()
	stories := make([]story.Story, len(records))
	for i, r := range records {
		stories[i] = story.Story{
			ID:            r.ID,
			Title:         r.Title,
			Description:   r.Description,
			Image:         images[i],
			ImageKeywords: r.ImageKeywords,
			RelatedURLs:   r.RelatedURLs,
			CreatedAt:     createdAt,
		}
	}

	log.InfoContext(ctx, "Generated stories", "count", len(stories))
	return stories, nil
}

// ChunksFromStory expands one story into at most five illustrated chunks in
// the order the provider returned them.
func (p *Pipeline) ChunksFromStory(ctx context.Context, s story.Story, cfg provider.Config) ([]story.Chunk, error) {
	log := p.flowLogger("chunks", cfg).With("story_id", s.ID)
	log.InfoContext(ctx, "Generating chunks", "title", s.Title)

	records, err := p.generator.Chunks(ctx, s, cfg)
	if err != nil {
		log.ErrorContext(ctx, "Chunk generation failed", "error", err)
		return nil, fmt.Errorf("%w: chunks: %w", ErrGenerationFailed, err)
	}
	if len(records) < story.ChunkCount {
		log.WarnContext(ctx, "Provider returned fewer chunks than requested",
			"count", len(records),
			"want", story.ChunkCount)
	}

	keywords := make([]string, len(records))
	for i, r := range records {
		keywords[i] = r.ImageKeywords
	}
	images := p.resolveImages(ctx, keywords)

	chunks := make([]story.Chunk, len(records))
	for i, r := range records {
		chunks[i] = story.Chunk{
			ID:            r.ID,
			Title:         r.Title,
			Content:       r.Content,
			Image:         images[i],
			ImageKeywords: r.ImageKeywords,
		}
	}

	log.InfoContext(ctx, "Generated chunks", "count", len(chunks))
	return chunks, nil
}

// ChatReply answers a message about a story. Without a provider the reply is
// the deterministic mock reply; a failed provider call yields ChatApology.
func (p *Pipeline) ChatReply(ctx context.Context, message string, c story.ChatContext, cfg *provider.Config) string {
	if cfg == nil {
		return MockChatReply(message, c)
	}

	log := p.flowLogger("chat", *cfg)
	log.InfoContext(ctx, "Generating chat reply", "history", len(c.PreviousMessages))

	reply, err := p.generator.Reply(ctx, message, c, *cfg)
	if err != nil {
		log.ErrorContext(ctx, "Chat generation failed", "error", err)
		return ChatApology
	}
	return reply
}

// resolveImages looks up one image per keyword set. Tasks never fail: each
// writes its own slot, so the group cannot return an error.
func (p *Pipeline) resolveImages(ctx context.Context, keywords []string) []string {
	images := make([]string, len(keywords))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, k := range keywords {
		g.Go(func() error {
			images[i] = p.resolver.Resolve(ctx, k)
			return nil
		})
	}
	_ = g.Wait()

	return images
}

func (p *Pipeline) flowLogger(flow string, cfg provider.Config) *slog.Logger {
	return p.logger.With(
		"flow", flow,
		"flow_id", uuid.NewString(),
		"provider", cfg.Provider,
		"model", cfg.Credentials().Model,
	)
}
