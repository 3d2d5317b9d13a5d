package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"pathwise.app/mentor/common/id"
	"pathwise.app/mentor/common/llm"
	"pathwise.app/mentor/common/logger"
	"pathwise.app/mentor/core/config"
	"pathwise.app/mentor/internal/agent"
	"pathwise.app/mentor/internal/http/dto"
	"pathwise.app/mentor/internal/retriever/docs"
	"pathwise.app/mentor/internal/retriever/typesense"
)

// One-shot pipeline run: reads a {objective, skills} JSON document from stdin
// and writes the {status, response} result to stdout. Logs go to stderr so
// the output stays pipeable.
func main() {
	ctx := context.Background()
	cfg := config.Load()

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(logger.NewTraceHandler(slog.NewTextHandler(os.Stderr, opts))))

	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read stdin", "error", err)
		os.Exit(1)
	}

	var req dto.GeneratePlanRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.ErrorContext(ctx, "invalid input document", "error", err)
		os.Exit(1)
	}

	pipeline := buildPipeline(ctx, cfg)

	ctx = logger.WithLogFields(ctx, logger.LogFields{RunID: logger.Ptr(id.New())})
	result := pipeline.Run(ctx, req.Objective, req.DomainSkills())

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		slog.ErrorContext(ctx, "failed to encode result", "error", err)
		os.Exit(1)
	}
}

// buildPipeline wires whatever the configuration allows; anything missing
// leaves the corresponding stage in deterministic fallback mode. The CLI
// skips the redis context cache: a one-shot run gains nothing from it.
func buildPipeline(ctx context.Context, cfg config.Config) *agent.Pipeline {
	var client llm.Client
	if cfg.LLM.Enabled() {
		var err error
		client, err = llm.New(llm.Config{
			Provider:  cfg.LLM.Provider,
			APIKey:    cfg.LLM.APIKey,
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
		})
		if err != nil {
			slog.WarnContext(ctx, "llm client unavailable, running in fallback mode", "error", err)
		}
	}

	reviewer := agent.NewReviewer(client)
	rewriter := agent.NewSmartRewriter(client)
	planner := agent.NewRoadmapBuilder(client)
	assigner := agent.NewAssignmentBuilder(client)

	if cfg.Retrieval.Enabled() {
		searcher, err := typesense.New(typesense.Config{
			URL:    cfg.Retrieval.URL,
			APIKey: cfg.Retrieval.APIKey,
		})
		if err == nil {
			retriever := docs.New(searcher, nil, docs.Options{
				Collection:  cfg.Retrieval.Collection,
				TopK:        cfg.Retrieval.TopK,
				MaxDistance: cfg.Retrieval.MaxDistance,
			})
			return agent.NewPipeline(reviewer, rewriter, retriever, planner, assigner)
		}
		slog.WarnContext(ctx, "typesense unavailable, context retrieval disabled", "error", err)
	}

	return agent.NewPipeline(reviewer, rewriter, nil, planner, assigner)
}
