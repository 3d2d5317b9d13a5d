package handler_test

import (
	"context"

	"pathwise.app/mentor/internal/agent"
	"pathwise.app/mentor/internal/domain"
)

type mockPipeline struct {
	runFn func(ctx context.Context, objective string, skills []domain.Skill) agent.Result
	calls int
}

func (m *mockPipeline) Run(ctx context.Context, objective string, skills []domain.Skill) agent.Result {
	m.calls++
	if m.runFn != nil {
		return m.runFn(ctx, objective, skills)
	}
	return agent.Result{Status: agent.StatusOK, Response: "plan"}
}
