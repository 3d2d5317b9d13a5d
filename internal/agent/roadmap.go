package agent

import (
	"context"
	"fmt"
	"math"
	"strings"

	"pathwise.app/mentor/common"
	"pathwise.app/mentor/common/llm"
	"pathwise.app/mentor/internal/domain"
)

const roadmapSystemPrompt = `Eres un coach técnico. Usa el contexto como fuente principal de conceptos y enlaces, pero NO te limites a él. Genera un roadmap conciso y claro con los conceptos clave a aprender, personalizando la profundidad según las skills del usuario.

Ajusta la cantidad de pasos al plazo:
- 1–2 semanas: 2–3 pasos
- ~1 mes: 3–4 pasos
- 2–3 meses: 4–6 pasos
- 6 meses o más: 6–8 pasos
La suma de los tiempos por paso no debe superar el plazo total.

Formato requerido para cada paso (en español):

Concept: <título del concepto>
Description: <explicación breve y accionable>
Useful links: <uno o más enlaces relevantes>
Tiempo: <tiempo asignado a este paso>

Devuelve solo el roadmap (lista de pasos), sin texto adicional ni explicaciones previas o posteriores.`

// roadmapStep is one entry of a fallback template. Pct is the share of the
// total deadline allocated to the step.
type roadmapStep struct {
	concept     string
	description string
	links       string
	pct         float64
}

var shortSteps = []roadmapStep{
	{"Fundamentos esenciales", "Cubre solo los principios imprescindibles para %s.", "https://developer.mozilla.org/", 0.4},
	{"Proyecto exprés", "Construye un entregable mínimo aplicando lo aprendido.", "https://www.freecodecamp.org/", 0.6},
}

var mediumSteps = []roadmapStep{
	{"Fundamentos del tema", "Asegura comprensión de los principios básicos para %s.", "https://developer.mozilla.org/", 0.3},
	{"Práctica guiada", "Realiza un proyecto pequeño aplicando los conceptos clave.", "https://www.freecodecamp.org/", 0.4},
	{"Despliegue", "Publica el proyecto y documenta el proceso extremo a extremo.", "https://docs.docker.com/", 0.3},
}

var longSteps = []roadmapStep{
	{"Fundamentos del tema", "Asegura comprensión de los principios básicos para %s.", "https://developer.mozilla.org/", 0.15},
	{"Profundización", "Estudia los conceptos intermedios y patrones habituales del ecosistema.", "https://roadmap.sh/", 0.2},
	{"Práctica guiada", "Realiza un proyecto pequeño aplicando los conceptos clave.", "https://www.freecodecamp.org/", 0.25},
	{"Proyecto completo", "Desarrolla un proyecto de mayor alcance integrando todo lo anterior.", "https://github.com/", 0.2},
	{"Despliegue y cierre", "Publica el proyecto y documenta el proceso extremo a extremo.", "https://docs.docker.com/", 0.2},
}

// RoadmapBuilder turns a SMART objective, retrieved context, and the user's
// skills into a deadline-sized learning roadmap.
type RoadmapBuilder struct {
	client llm.Client
}

func NewRoadmapBuilder(client llm.Client) *RoadmapBuilder {
	return &RoadmapBuilder{client: client}
}

func (b *RoadmapBuilder) Build(ctx context.Context, smartObjective, retrieved string, skills []domain.Skill, deadline string) Outcome {
	userPrompt := fmt.Sprintf(
		"SMART objective:\n%s\n\nPlazo: %s\n\nContexto (fuente principal, opcional):\n%s\n\nSkills del usuario:\n%s\n\nConstruye el roadmap siguiendo estrictamente el formato indicado.",
		strings.TrimSpace(smartObjective), deadline, strings.TrimSpace(retrieved), domain.FormatSkills(skills),
	)

	out := generate(ctx, b.client, llm.Request{
		SystemPrompt: roadmapSystemPrompt,
		UserPrompt:   userPrompt,
	}, func() string {
		return fallbackRoadmap(smartObjective, deadline)
	})

	out.Text = common.NormalizeMrkdwn(out.Text)
	return out
}

// fallbackRoadmap selects a template by deadline band and allocates each
// step's time as a fixed share of the total, clamped to at least one unit.
func fallbackRoadmap(smartObjective, deadline string) string {
	base := strings.TrimSpace(smartObjective)
	if base == "" {
		base = "Aprender un tema técnico"
	}

	total, unit, ok := common.ParseDeadline(deadline)
	if !ok {
		total, unit, _ = common.ParseDeadline(common.DefaultDeadline)
	}

	steps := mediumSteps
	switch {
	case unit == common.UnitWeek && total <= 2:
		steps = shortSteps
	case unit == common.UnitYear, unit == common.UnitMonth && total >= 6:
		steps = longSteps
	}

	blocks := make([]string, 0, len(steps))
	for _, step := range steps {
		desc := step.description
		if strings.Contains(desc, "%s") {
			desc = fmt.Sprintf(desc, base)
		}
		blocks = append(blocks, fmt.Sprintf(
			"Concept: %s\nDescription: %s\nUseful links: %s\nTiempo: %s",
			step.concept, desc, step.links, stepTime(total, unit, step.pct),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func stepTime(total int, unit common.TimeUnit, pct float64) string {
	n := int(math.Round(float64(total) * pct))
	if n < 1 {
		n = 1
	}
	// A year-denominated allocation of 12+ years reads better in months.
	if unit == common.UnitYear && n >= 12 {
		months := n * 12
		return fmt.Sprintf("%d %s", months, common.UnitMonth.Name(months))
	}
	return fmt.Sprintf("%d %s", n, unit.Name(n))
}
