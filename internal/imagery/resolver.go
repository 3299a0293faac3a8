// Package imagery attaches an image URL to generated content. Resolution
// never fails: lookups that go wrong fall back to a deterministic
// placeholder, and every answer is cached for the life of the process.
package imagery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLookupTimeout bounds one external image lookup.
const DefaultLookupTimeout = 10 * time.Second

// Resolver maps keywords to image URLs.
type Resolver struct {
	searcher Searcher
	timeout  time.Duration
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
	group singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookupTimeout sets the per-lookup deadline. Zero disables it.
func WithLookupTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver. A nil searcher makes every key resolve to
// its fallback URL.
func NewResolver(searcher Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		searcher: searcher,
		timeout:  DefaultLookupTimeout,
		logger:   slog.Default(),
		cache:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns an image URL for keywords. It always returns a non-empty
// URL and performs at most one external lookup per normalized key.
func (r *Resolver) Resolve(ctx context.Context, keywords string) string {
	key := Normalize(keywords)

	if cached, ok := r.cached(key); ok {
		return cached
	}

	v, _, _ := r.group.Do(key, func() (any, error) {
		// A concurrent flight may have finished between the read above and here.
		if cached, ok := r.cached(key); ok {
			return cached, nil
		}
		resolved := r.lookup(ctx, key)
		// A cancelled caller says nothing about the key, so its fallback is
		// not remembered.
		if ctx.Err() != nil {
			return resolved, nil
		}
		r.mu.Lock()
		r.cache[key] = resolved
		r.mu.Unlock()
		return resolved, nil
	})
	return v.(string)
}

// Cached reports the URL stored for keywords, if any.
func (r *Resolver) Cached(keywords string) (string, bool) {
	return r.cached(Normalize(keywords))
}

func (r *Resolver) cached(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.cache[key]
	return v, ok
}

func (r *Resolver) lookup(ctx context.Context, key string) string {
	if r.searcher == nil || key == "" {
		return FallbackURL(key)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	found, err := r.searcher.Search(ctx, key)
	if err != nil || found == "" {
		r.logger.WarnContext(ctx, "Image lookup failed, using fallback",
			"keywords", key,
			"error", err)
		return FallbackURL(key)
	}

	r.logger.DebugContext(ctx, "Image resolved", "keywords", key)
	return found
}

// Normalize lower-cases keywords and collapses whitespace.
func Normalize(keywords string) string {
	return strings.Join(strings.Fields(strings.ToLower(keywords)), " ")
}

// FallbackURL is the deterministic placeholder image for keywords.
func FallbackURL(keywords string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(keywords)), "-")
	if slug == "" {
		slug = "storyline"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", url.PathEscape(slug))
}
