package docs

import (
	"context"
	"errors"
	"testing"

	"pathwise.app/mentor/internal/domain"
)

type fakeSearcher struct {
	hits []domain.RetrievalHit
	err  error
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string, _ int) ([]domain.RetrievalHit, error) {
	return f.hits, f.err
}

type fakeCache struct {
	store map[string]string
	gets  int
	sets  int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool) {
	f.gets++
	v, ok := f.store[key]
	return v, ok
}

func (f *fakeCache) Set(_ context.Context, key, value string) {
	f.sets++
	f.store[key] = value
}

func hit(text string, distance float64) domain.RetrievalHit {
	return domain.RetrievalHit{Text: text, Distance: distance, HasDistance: true}
}

func TestRetrieveFiltersByDistance(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{
		hit("cerca", 0.1),
		hit("lejos", 0.4),
		hit("muy lejos", 0.5),
	}}
	r := New(searcher, nil, Options{MaxDistance: 0.35})

	got := r.Retrieve(context.Background(), "aprender docker")
	if got != "cerca" {
		t.Errorf("Retrieve() = %q, want %q", got, "cerca")
	}
}

func TestRetrieveJoinsRankedHits(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{
		hit("primero", 0.1),
		hit("segundo", 0.2),
	}}
	r := New(searcher, nil, Options{})

	got := r.Retrieve(context.Background(), "aprender docker")
	want := "primero\n\nsegundo"
	if got != want {
		t.Errorf("Retrieve() = %q, want %q", got, want)
	}
}

func TestRetrieveAllAboveThresholdIsEmpty(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{
		hit("a", 0.8),
		hit("b", 0.9),
	}}
	r := New(searcher, nil, Options{})

	if got := r.Retrieve(context.Background(), "aprender docker"); got != "" {
		t.Errorf("Retrieve() = %q, want empty", got)
	}
}

func TestRetrieveExcludesHitsWithoutDistance(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{
		{Text: "sin distancia"},
		hit("con distancia", 0.2),
	}}
	r := New(searcher, nil, Options{})

	if got := r.Retrieve(context.Background(), "aprender docker"); got != "con distancia" {
		t.Errorf("Retrieve() = %q, want %q", got, "con distancia")
	}
}

func TestRetrieveEmptyObjective(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{hit("x", 0.1)}}
	r := New(searcher, nil, Options{})

	if got := r.Retrieve(context.Background(), "   "); got != "" {
		t.Errorf("Retrieve() = %q, want empty for blank objective", got)
	}
}

func TestRetrieveSearcherErrorIsEmpty(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	r := New(searcher, nil, Options{})

	if got := r.Retrieve(context.Background(), "aprender docker"); got != "" {
		t.Errorf("Retrieve() = %q, want empty on searcher error", got)
	}
}

func TestRetrieveNilSearcher(t *testing.T) {
	r := New(nil, nil, Options{})

	if got := r.Retrieve(context.Background(), "aprender docker"); got != "" {
		t.Errorf("Retrieve() = %q, want empty with nil searcher", got)
	}
}

func TestRetrieveWithinOverridesThreshold(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{hit("lejos", 0.4)}}
	r := New(searcher, nil, Options{MaxDistance: 0.35})

	if got := r.RetrieveWithin(context.Background(), "aprender docker", 0.5); got != "lejos" {
		t.Errorf("RetrieveWithin() = %q, want %q", got, "lejos")
	}
}

func TestRetrieveUsesCache(t *testing.T) {
	searcher := &fakeSearcher{hits: []domain.RetrievalHit{hit("fresco", 0.1)}}
	cache := &fakeCache{store: map[string]string{}}
	r := New(searcher, cache, Options{})

	first := r.Retrieve(context.Background(), "aprender docker")
	if first != "fresco" {
		t.Fatalf("Retrieve() = %q, want %q", first, "fresco")
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	searcher.hits = nil // cache must answer the second call
	second := r.Retrieve(context.Background(), "aprender docker")
	if second != "fresco" {
		t.Errorf("cached Retrieve() = %q, want %q", second, "fresco")
	}
}
