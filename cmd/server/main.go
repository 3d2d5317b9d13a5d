package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pathwise.app/mentor/common/id"
	"pathwise.app/mentor/common/llm"
	"pathwise.app/mentor/common/logger"
	"pathwise.app/mentor/common/otel"
	"pathwise.app/mentor/core/config"
	"pathwise.app/mentor/internal/agent"
	"pathwise.app/mentor/internal/http/middleware"
	httprouter "pathwise.app/mentor/internal/http/router"
	"pathwise.app/mentor/internal/retriever/docs"
	"pathwise.app/mentor/internal/retriever/typesense"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg := config.Load()

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "mentor starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	pipeline := buildPipeline(ctx, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, pipeline)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// buildPipeline wires every stage collaborator the configuration allows.
// Missing credentials never block startup: the pipeline runs in deterministic
// fallback mode for whatever is absent.
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
		} else {
			slog.InfoContext(ctx, "llm client ready", "provider", cfg.LLM.Provider, "model", client.Model())
		}
	} else {
		slog.WarnContext(ctx, "no llm credentials configured, running in fallback mode")
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
		if err != nil {
			slog.WarnContext(ctx, "typesense unavailable, context retrieval disabled", "error", err)
		} else {
			var cache docs.Cache
			if cfg.Cache.Enabled() {
				if opts, err := redis.ParseURL(cfg.Cache.RedisURL); err != nil {
					slog.WarnContext(ctx, "invalid redis url, context cache disabled", "error", err)
				} else {
					cache = docs.NewRedisCache(redis.NewClient(opts), cfg.Cache.TTL)
					slog.InfoContext(ctx, "context cache ready", "ttl", cfg.Cache.TTL)
				}
			}
			retriever := docs.New(searcher, cache, docs.Options{
				Collection:  cfg.Retrieval.Collection,
				TopK:        cfg.Retrieval.TopK,
				MaxDistance: cfg.Retrieval.MaxDistance,
			})
			slog.InfoContext(ctx, "retriever ready",
				"collection", cfg.Retrieval.Collection,
				"top_k", cfg.Retrieval.TopK,
				"max_distance", cfg.Retrieval.MaxDistance)
			return agent.NewPipeline(reviewer, rewriter, retriever, planner, assigner)
		}
	} else {
		slog.InfoContext(ctx, "retrieval not configured, plans build without context")
	}

	return agent.NewPipeline(reviewer, rewriter, nil, planner, assigner)
}

func setupRouter(cfg config.Config, pipeline *agent.Pipeline) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, pipeline)

	return router
}

const banner = `
┌┬┐┌─┐┌┐┌┌┬┐┌─┐┬─┐
│││├┤ │││ │ │ │├┬┘
┴ ┴└─┘┘└┘ ┴ └─┘┴└─
`
