package handler

import (
	"context"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"pathwise.app/mentor/common/id"
	"pathwise.app/mentor/common/logger"
	"pathwise.app/mentor/internal/agent"
	"pathwise.app/mentor/internal/domain"
	"pathwise.app/mentor/internal/http/dto"
)

// PlanRunner is the pipeline surface the handler needs. Run never fails;
// rejection arrives as a normal result.
type PlanRunner interface {
	Run(ctx context.Context, objective string, skills []domain.Skill) agent.Result
}

type AgentHandler struct {
	pipeline PlanRunner
}

func NewAgentHandler(pipeline PlanRunner) *AgentHandler {
	return &AgentHandler{pipeline: pipeline}
}

func (h *AgentHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid plan request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runID := id.New()
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:          logger.Ptr(runID),
		ObjectiveChars: logger.Ptr(utf8.RuneCountInString(req.Objective)),
	})

	result := h.pipeline.Run(ctx, req.Objective, req.DomainSkills())

	c.JSON(http.StatusOK, dto.GeneratePlanResponse{
		Status:   string(result.Status),
		Response: result.Response,
	})
}
