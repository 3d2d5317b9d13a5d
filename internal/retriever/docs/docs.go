package docs

import (
	"context"
	"log/slog"
	"strings"

	"pathwise.app/mentor/internal/domain"
)

// DefaultMaxDistance is the similarity-distance ceiling applied when neither
// the caller nor configuration supplies one.
const DefaultMaxDistance = 0.35

// Searcher is the ranked-retrieval collaborator: given a query and a
// collection, return up to topK hits ordered most-similar first.
type Searcher interface {
	Search(ctx context.Context, query, collection string, topK int) ([]domain.RetrievalHit, error)
}

// Cache is an optional read-through cache for assembled contexts.
// Implementations must treat failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type Options struct {
	Collection  string
	TopK        int
	MaxDistance float64
}

// Retriever turns a learning objective into supporting context text.
// Retrieval is strictly best-effort: any collaborator failure, an absent
// collaborator, or an empty result all yield an empty context, never an
// error, so downstream stages always run.
type Retriever struct {
	searcher Searcher
	cache    Cache
	opts     Options
}

func New(searcher Searcher, cache Cache, opts Options) *Retriever {
	if opts.Collection == "" {
		opts.Collection = "docs"
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = DefaultMaxDistance
	}
	return &Retriever{searcher: searcher, cache: cache, opts: opts}
}

// Retrieve returns context for the objective using the configured distance
// ceiling.
func (r *Retriever) Retrieve(ctx context.Context, objective string) string {
	return r.RetrieveWithin(ctx, objective, r.opts.MaxDistance)
}

// RetrieveWithin is Retrieve with an explicit distance ceiling; non-positive
// values fall back to the configured one.
func (r *Retriever) RetrieveWithin(ctx context.Context, objective string, maxDistance float64) string {
	objective = strings.TrimSpace(objective)
	if objective == "" || r.searcher == nil {
		return ""
	}
	if maxDistance <= 0 {
		maxDistance = r.opts.MaxDistance
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, cacheKey(r.opts.Collection, objective)); ok {
			slog.DebugContext(ctx, "retrieval cache hit", "collection", r.opts.Collection)
			return cached
		}
	}

	hits, err := r.searcher.Search(ctx, objective, r.opts.Collection, r.opts.TopK)
	if err != nil {
		slog.WarnContext(ctx, "retrieval failed, continuing without context",
			"collection", r.opts.Collection,
			"error", err)
		return ""
	}

	kept := make([]string, 0, len(hits))
	for _, hit := range hits {
		if !hit.HasDistance || hit.Distance > maxDistance {
			continue
		}
		if hit.Text != "" {
			kept = append(kept, hit.Text)
		}
	}

	if len(kept) == 0 {
		slog.InfoContext(ctx, "no chunks under distance threshold",
			"collection", r.opts.Collection,
			"max_distance", maxDistance,
			"hits", len(hits))
		return ""
	}

	slog.InfoContext(ctx, "context retrieved",
		"collection", r.opts.Collection,
		"chunks", len(kept),
		"max_distance", maxDistance)

	contextText := strings.Join(kept, "\n\n")
	if r.cache != nil {
		r.cache.Set(ctx, cacheKey(r.opts.Collection, objective), contextText)
	}
	return contextText
}
