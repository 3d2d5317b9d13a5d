package agent

import (
	"context"
	"log/slog"
	"strings"

	"pathwise.app/mentor/common/llm"
)

// Origin tags where a stage's text came from.
type Origin int

const (
	OriginGenerated Origin = iota
	OriginFallback
)

func (o Origin) String() string {
	if o == OriginGenerated {
		return "generated"
	}
	return "fallback"
}

// Outcome is the result of one generative stage. The origin is for logging
// only: both origins pass through the same normalization and length rules, so
// callers cannot distinguish a fallback answer by contract.
type Outcome struct {
	Text   string
	Origin Origin
}

// generate invokes the capability when available and degrades to the
// deterministic fallback on a nil client, a failed call, or blank output.
// It never returns an error; the fallback must always produce text.
func generate(ctx context.Context, client llm.Client, req llm.Request, fallback func() string) Outcome {
	if client == nil {
		return Outcome{Text: fallback(), Origin: OriginFallback}
	}

	text, err := client.Complete(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "generation failed, using fallback", "error", err)
		return Outcome{Text: fallback(), Origin: OriginFallback}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		slog.WarnContext(ctx, "generation returned empty text, using fallback")
		return Outcome{Text: fallback(), Origin: OriginFallback}
	}

	return Outcome{Text: text, Origin: OriginGenerated}
}
