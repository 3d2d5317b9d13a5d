package agent

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"pathwise.app/mentor/common"
	"pathwise.app/mentor/common/logger"
	"pathwise.app/mentor/internal/domain"
)

// Status is the pipeline's externally visible verdict.
type Status string

const (
	StatusPending Status = "pending"
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid_objective"
)

type phase string

const (
	phaseReviewing   phase = "reviewing"
	phaseNormalizing phase = "normalizing"
	phaseRetrieving  phase = "retrieving"
	phasePlanning    phase = "planning"
	phaseAssigning   phase = "assigning"
	phaseRejected    phase = "rejected"
	phaseDone        phase = "done"
)

// RejectionMessage is returned verbatim whenever the validity gate rejects an
// objective.
const RejectionMessage = "❌ *Objetivo no válido*\n\n" +
	"Solo puedo ayudarte con objetivos de *programación y tecnología*.\n\n" +
	"Puedo ayudarte a aprender:\n" +
	"• 🔤 Lenguajes: Python, JavaScript, Java, TypeScript, etc.\n" +
	"• ⚛️ Frameworks: React, Django, Node.js, Vue, Angular, etc.\n" +
	"• 🐳 Tecnologías: Docker, Kubernetes, Git, CI/CD, etc.\n" +
	"• ☁️ Cloud: AWS, Azure, GCP, serverless, etc.\n" +
	"• 🗄️ Bases de datos: SQL, MongoDB, PostgreSQL, etc.\n" +
	"• 🤖 Data Science, Machine Learning, IA\n" +
	"• 🌐 Desarrollo web, móvil, backend, frontend\n\n" +
	"Ejemplos válidos:\n" +
	"• _'Quiero aprender React en 2 semanas'_\n" +
	"• _'Necesito dominar Python'_\n" +
	"• _'Aprender Docker y Kubernetes'_"

// State is the record threaded through a single run. It is passed by value:
// each transition returns a new copy, so concurrent runs never share mutable
// state. Fields fill strictly in stage order; after a rejection nothing past
// Deadline is ever populated.
type State struct {
	Objective      string
	Skills         []domain.Skill
	Valid          bool
	Status         Status
	Deadline       string
	SmartObjective string
	Context        string
	Roadmap        string
	Assignment     string
}

// Result is what the pipeline hands back to transport. Response is always
// non-empty: the rejection message, or the assembled plan.
type Result struct {
	Status   Status `json:"status"`
	Response string `json:"response"`
}

type objectiveReviewer interface {
	Review(ctx context.Context, objective string) (bool, string)
}

type objectiveRewriter interface {
	Rewrite(ctx context.Context, objective string, skills []domain.Skill, deadline string) Outcome
}

type contextRetriever interface {
	Retrieve(ctx context.Context, objective string) string
}

type roadmapBuilder interface {
	Build(ctx context.Context, smartObjective, retrieved string, skills []domain.Skill, deadline string) Outcome
}

type assignmentBuilder interface {
	Build(ctx context.Context, roadmap string, skills []domain.Skill) Outcome
}

// Pipeline runs the fixed stage sequence. Any collaborator may be degraded or
// nil underneath; stages fall back deterministically, so Run never fails.
type Pipeline struct {
	reviewer  objectiveReviewer
	rewriter  objectiveRewriter
	retriever contextRetriever
	planner   roadmapBuilder
	assigner  assignmentBuilder
}

func NewPipeline(reviewer objectiveReviewer, rewriter objectiveRewriter, retriever contextRetriever, planner roadmapBuilder, assigner assignmentBuilder) *Pipeline {
	return &Pipeline{
		reviewer:  reviewer,
		rewriter:  rewriter,
		retriever: retriever,
		planner:   planner,
		assigner:  assigner,
	}
}

// Run executes the full pipeline for one objective and returns the assembled
// result. It never returns an error: rejection is a normal terminal state and
// every stage degrades to a deterministic fallback.
func (p *Pipeline) Run(ctx context.Context, objective string, skills []domain.Skill) Result {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component:      "mentor.agent.pipeline",
		ObjectiveChars: logger.Ptr(utf8.RuneCountInString(objective)),
	})
	slog.InfoContext(ctx, "pipeline run started", "skills", len(skills))

	state := State{
		Objective: strings.TrimSpace(objective),
		Skills:    skills,
		Status:    StatusPending,
		Deadline:  common.DefaultDeadline,
	}

	current := phaseReviewing
	for current != phaseDone && current != phaseRejected {
		state, current = p.step(ctx, current, state)
	}

	result := assemble(state)
	slog.InfoContext(ctx, "pipeline run finished",
		"status", string(result.Status),
		"response_chars", utf8.RuneCountInString(result.Response))
	return result
}

// step runs one stage and returns the successor state and phase. Each case is
// a pure transition over the copied state.
func (p *Pipeline) step(ctx context.Context, current phase, state State) (State, phase) {
	sc := logger.StartSpan(ctx, "agent."+string(current))
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Stage: logger.Ptr(string(current))})

	switch current {
	case phaseReviewing:
		valid, deadline := p.reviewer.Review(ctx, state.Objective)
		state.Valid = valid
		state.Deadline = deadline
		if !valid {
			state.Status = StatusInvalid
			slog.InfoContext(ctx, "objective rejected")
			return state, phaseRejected
		}
		state.Status = StatusOK
		slog.InfoContext(ctx, "objective accepted", "deadline", deadline)
		return state, phaseNormalizing

	case phaseNormalizing:
		out := p.rewriter.Rewrite(ctx, state.Objective, state.Skills, state.Deadline)
		state.SmartObjective = out.Text
		slog.InfoContext(ctx, "smart objective ready", "origin", out.Origin.String())
		return state, phaseRetrieving

	case phaseRetrieving:
		if p.retriever != nil {
			state.Context = p.retriever.Retrieve(ctx, state.Objective)
		}
		slog.InfoContext(ctx, "context retrieved", "context_chars", len(state.Context))
		return state, phasePlanning

	case phasePlanning:
		out := p.planner.Build(ctx, state.SmartObjective, state.Context, state.Skills, state.Deadline)
		state.Roadmap = out.Text
		slog.InfoContext(ctx, "roadmap ready", "origin", out.Origin.String())
		return state, phaseAssigning

	case phaseAssigning:
		out := p.assigner.Build(ctx, state.Roadmap, state.Skills)
		state.Assignment = out.Text
		slog.InfoContext(ctx, "assignment ready", "origin", out.Origin.String())
		return state, phaseDone

	default:
		// Unreachable: Run stops on the terminal phases.
		return state, phaseDone
	}
}

var sectionSeparator = "\n\n" + strings.Repeat("─", 40) + "\n\n"

// assemble builds the outward response from a terminal state, labeling each
// non-empty section and joining them with a visible separator.
func assemble(state State) Result {
	if state.Status == StatusInvalid {
		return Result{Status: StatusInvalid, Response: RejectionMessage}
	}

	var parts []string
	if s := strings.TrimSpace(state.SmartObjective); s != "" {
		parts = append(parts, "✨ *OBJETIVO SMART*\n\n"+s)
	}
	if s := strings.TrimSpace(state.Roadmap); s != "" {
		parts = append(parts, "🗺️ *ROADMAP DE APRENDIZAJE* _(Plazo: "+state.Deadline+")_\n\n"+s)
	}
	if s := strings.TrimSpace(state.Assignment); s != "" {
		parts = append(parts, "🧪 *TRABAJO FINAL*\n\n"+s)
	}

	return Result{Status: StatusOK, Response: strings.Join(parts, sectionSeparator)}
}
