package llm

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"tempo/internal/logging"
)

const (
	defaultCacheMaxSize = 128
	defaultCacheTTL     = 5 * time.Minute
)

// CacheConfig configures the generation cache behaviour.
type CacheConfig struct {
	// MaxSize is the maximum number of entries in the LRU cache.
	MaxSize int
	// TTL is how long a cached completion remains valid. Short enough that
	// the date context embedded in prompts cannot go stale across midnight.
	TTL time.Duration
}

// DefaultCacheConfig returns sensible defaults for completion caching.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{MaxSize: defaultCacheMaxSize, TTL: defaultCacheTTL}
}

// cacheEntry holds a cached completion along with the timestamp it was stored.
type cacheEntry struct {
	output   string
	storedAt time.Time
}

// cachingGenerator is a Generator decorator that caches completions keyed by
// the full prompt. Identical prompts within the TTL reuse the previous
// output rather than hitting the model again.
type cachingGenerator struct {
	delegate Generator
	cache    *lru.Cache[string, cacheEntry]
	ttl      time.Duration
	logger   logging.Logger
}

// WithCache wraps a Generator with an LRU+TTL completion cache.
func WithCache(delegate Generator, config CacheConfig) (Generator, error) {
	if config.MaxSize <= 0 {
		config.MaxSize = defaultCacheMaxSize
	}
	if config.TTL <= 0 {
		config.TTL = defaultCacheTTL
	}

	cache, err := lru.New[string, cacheEntry](config.MaxSize)
	if err != nil {
		return nil, err
	}

	return &cachingGenerator{
		delegate: delegate,
		cache:    cache,
		ttl:      config.TTL,
		logger:   logging.NewComponentLogger("llm-cache"),
	}, nil
}

func (g *cachingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if entry, ok := g.cache.Get(prompt); ok {
		if time.Since(entry.storedAt) < g.ttl {
			g.logger.Debug("cache hit for %d-byte prompt", len(prompt))
			return entry.output, nil
		}
		g.cache.Remove(prompt)
	}

	output, err := g.delegate.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	g.cache.Add(prompt, cacheEntry{output: output, storedAt: time.Now()})
	return output, nil
}

func (g *cachingGenerator) Model() string {
	return g.delegate.Model()
}
