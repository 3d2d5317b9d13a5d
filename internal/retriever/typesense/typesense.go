package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"pathwise.app/mentor/internal/domain"
)

// Document schema fields expected in the docs collection. The collection is
// built offline with a server-side auto-embedding field, so queries here are
// plain text and Typesense computes the query vector itself.
const (
	textField      = "text"
	sourceField    = "source"
	embeddingField = "embedding"
)

type Config struct {
	URL    string
	APIKey string
}

// Searcher implements ranked vector retrieval against a Typesense server.
type Searcher struct {
	client *typesense.Client
}

func New(cfg Config) (*Searcher, error) {
	if cfg.URL == "" || cfg.APIKey == "" {
		return nil, fmt.Errorf("typesense URL and API key are required")
	}

	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(10*time.Second),
	)

	return &Searcher{client: client}, nil
}

// Search runs a semantic query against the collection and maps hits onto
// domain.RetrievalHit. Typesense reports similarity as vector_distance
// (lower = more similar); hits without one are returned with
// HasDistance=false so the caller can exclude them.
func (s *Searcher) Search(ctx context.Context, query, collection string, topK int) ([]domain.RetrievalHit, error) {
	params := &api.SearchCollectionParams{
		Q:             pointer.String(query),
		QueryBy:       pointer.String(embeddingField),
		PerPage:       pointer.Int(topK),
		ExcludeFields: pointer.String(embeddingField),
	}

	result, err := s.client.Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("typesense search: %w", err)
	}

	if result.Hits == nil {
		return nil, nil
	}

	hits := make([]domain.RetrievalHit, 0, len(*result.Hits))
	for _, h := range *result.Hits {
		if h.Document == nil {
			continue
		}
		doc := *h.Document

		hit := domain.RetrievalHit{}
		if text, ok := doc[textField].(string); ok {
			hit.Text = text
		}
		if src, ok := doc[sourceField].(string); ok {
			hit.Source = src
		}
		if h.VectorDistance != nil {
			hit.Distance = float64(*h.VectorDistance)
			hit.HasDistance = true
		}
		hits = append(hits, hit)
	}

	return hits, nil
}
