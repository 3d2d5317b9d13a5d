package agent

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"pathwise.app/mentor/common"
	"pathwise.app/mentor/common/llm"
)

const reviewSystemPrompt = `Eres un filtro de objetivos de aprendizaje. Determina si el objetivo del usuario es un objetivo técnico relevante (software, datos, infraestructura, IA, DevOps, cloud, desarrollo web o móvil) y extrae el plazo que menciona.

Responde SOLO con un objeto JSON con exactamente estos campos:
{"valid": true|false, "deadline": "<plazo en español, ej: '2 semanas', '1 mes', '3 meses'>"}

Si el usuario no menciona un plazo, usa "1 mes". No agregues texto fuera del JSON.`

var reviewSchema = llm.GenerateSchema[Verdict]()

// techKeywords is the deterministic classifier's vocabulary. Single words are
// matched as whole lowercase tokens so that "ia" never fires inside
// "estudiar" or "go" inside "algo".
var techKeywords = []string{
	"python", "javascript", "typescript", "java", "golang", "go", "rust",
	"ruby", "php", "kotlin", "swift", "scala", "sql", "html", "css",
	"react", "angular", "vue", "svelte", "django", "flask", "fastapi",
	"rails", "spring", "laravel", "nextjs", "express",
	"node", "nodejs", "docker", "kubernetes", "terraform", "ansible",
	"git", "linux", "bash", "devops", "backend", "frontend", "fullstack",
	"aws", "azure", "gcp", "serverless", "cloud",
	"mongodb", "postgresql", "postgres", "mysql", "redis", "elasticsearch",
	"kafka", "grpc", "graphql", "api", "microservicios",
	"ia", "programar", "programación", "algoritmos", "testing",
}

// techPhrases are matched by substring because they contain spaces or
// characters that tokenization would split.
var techPhrases = []string{
	"machine learning", "data science", "deep learning",
	"inteligencia artificial", "desarrollo web", "desarrollo móvil",
	"base de datos", "bases de datos", "c++", "c#", ".net", "ci/cd",
	"node.js", "next.js",
}

var wordSplit = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Reviewer is the pipeline's validity gate.
type Reviewer struct {
	client llm.Client
}

func NewReviewer(client llm.Client) *Reviewer {
	return &Reviewer{client: client}
}

// Review judges whether the objective is an in-domain technical learning goal
// and extracts its deadline phrase. The returned deadline is never empty, and
// the method never fails: when the model is unavailable or its output
// unparseable, a keyword classifier decides instead.
func (r *Reviewer) Review(ctx context.Context, objective string) (bool, string) {
	objective = strings.TrimSpace(objective)
	if utf8.RuneCountInString(objective) < 3 {
		return false, common.DefaultDeadline
	}

	if r.client != nil {
		if verdict, ok := r.reviewWithModel(ctx, objective); ok {
			return verdict.Valid, verdict.Deadline
		}
	}

	valid := classifyObjective(objective)
	slog.InfoContext(ctx, "review fell back to keyword classifier", "valid", valid)
	return valid, common.ExtractDeadline(objective)
}

func (r *Reviewer) reviewWithModel(ctx context.Context, objective string) (Verdict, bool) {
	text, err := r.client.Complete(ctx, llm.Request{
		SystemPrompt: reviewSystemPrompt,
		UserPrompt:   "Objetivo del usuario:\n" + objective,
		SchemaName:   "objective_review",
		Schema:       reviewSchema,
		Temperature:  llm.Temp(0),
	})
	if err != nil {
		slog.WarnContext(ctx, "review call failed", "error", err)
		return Verdict{}, false
	}

	verdict, ok := parseVerdict(text)
	if !ok {
		slog.WarnContext(ctx, "review output unparseable", "chars", len(text))
	}
	return verdict, ok
}

func classifyObjective(objective string) bool {
	lower := strings.ToLower(objective)

	for _, phrase := range techPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	tokens := wordSplit.Split(lower, -1)
	for _, tok := range tokens {
		for _, kw := range techKeywords {
			if tok == kw {
				return true
			}
		}
	}
	return false
}
