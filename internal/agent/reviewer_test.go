package agent

import (
	"context"
	"errors"
	"testing"

	"pathwise.app/mentor/common/llm"
)

// fakeLLM implements llm.Client for stage tests. Responses are served in
// order; an error or empty canned slice fails every call.
type fakeLLM struct {
	responses []string
	err       error
	requests  []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no canned response")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *fakeLLM) Model() string { return "fake-model" }

func TestReviewKeywordFallback(t *testing.T) {
	tests := []struct {
		name      string
		objective string
		valid     bool
		deadline  string
	}{
		{"keyword match", "aprender Python", true, "1 mes"},
		{"out of domain", "mejorar comunicación", false, "1 mes"},
		{"empty", "", false, "1 mes"},
		{"too short", "ir", false, "1 mes"},
		{"keyword with deadline", "quiero aprender react en 2 semanas", true, "2 semanas"},
		{"phrase keyword", "dominar machine learning", true, "1 mes"},
		{"special characters keyword", "aprender c++ desde cero", true, "1 mes"},
		{"keyword must be whole token", "quiero estudiar filosofía", false, "1 mes"},
		{"substring does not fire", "necesito algo nuevo", false, "1 mes"},
	}

	r := NewReviewer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, deadline := r.Review(context.Background(), tt.objective)
			if valid != tt.valid {
				t.Errorf("Review(%q) valid = %v, want %v", tt.objective, valid, tt.valid)
			}
			if deadline != tt.deadline {
				t.Errorf("Review(%q) deadline = %q, want %q", tt.objective, deadline, tt.deadline)
			}
		})
	}
}

func TestReviewUsesModelVerdict(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"valid": true, "deadline": "3 meses"}`}}
	r := NewReviewer(client)

	valid, deadline := r.Review(context.Background(), "quiero dominar kubernetes")
	if !valid {
		t.Fatal("expected valid verdict from model")
	}
	if deadline != "3 meses" {
		t.Errorf("deadline = %q, want %q", deadline, "3 meses")
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(client.requests))
	}
	if client.requests[0].Schema == nil {
		t.Error("expected structured output schema on review request")
	}
}

func TestReviewModelRejectionIsFinal(t *testing.T) {
	// The model says invalid even though the keyword classifier would accept.
	client := &fakeLLM{responses: []string{`{"valid": false, "deadline": "1 mes"}`}}
	r := NewReviewer(client)

	valid, _ := r.Review(context.Background(), "aprender python")
	if valid {
		t.Error("model rejection must not be overridden by keywords")
	}
}

func TestReviewFallsBackOnModelFailure(t *testing.T) {
	client := &fakeLLM{err: errors.New("provider down")}
	r := NewReviewer(client)

	valid, deadline := r.Review(context.Background(), "aprender docker en dos semanas")
	if !valid {
		t.Error("keyword classifier should accept a docker objective")
	}
	if deadline != "2 semanas" {
		t.Errorf("deadline = %q, want %q", deadline, "2 semanas")
	}
}

func TestReviewFallsBackOnUnparseableOutput(t *testing.T) {
	client := &fakeLLM{responses: []string{"Sí, parece un buen objetivo."}}
	r := NewReviewer(client)

	valid, _ := r.Review(context.Background(), "mejorar mi inglés")
	if valid {
		t.Error("unparseable output plus no keywords must reject")
	}
}

func TestReviewShortObjectiveSkipsModel(t *testing.T) {
	client := &fakeLLM{responses: []string{`{"valid": true, "deadline": "1 mes"}`}}
	r := NewReviewer(client)

	valid, _ := r.Review(context.Background(), "ab")
	if valid {
		t.Error("objectives under 3 runes are rejected outright")
	}
	if len(client.requests) != 0 {
		t.Errorf("short objectives must not reach the model, got %d calls", len(client.requests))
	}
}
