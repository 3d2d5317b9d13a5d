package agent

import (
	"context"
	"strings"

	"pathwise.app/mentor/common"
	"pathwise.app/mentor/common/llm"
	"pathwise.app/mentor/internal/domain"
)

// MaxAssignmentChars caps the capstone assignment so it never overwhelms the
// roadmap it accompanies.
const MaxAssignmentChars = 1000

const assignmentSystemPrompt = `Eres un instructor técnico. A partir del ROADMAP, crea un TRABAJO FINAL conciso para practicar. Asume conocidas las SKILLS (puedes usarlas en las tareas).
REQUISITOS ESTRICTOS:
- Máximo 1000 caracteres total.
- Español, formato simple para Slack.
- 1 línea de objetivo + 3–5 pasos numerados '1.', '2.', '3.' en líneas separadas (cada paso: qué hacer y un criterio breve en UNA línea).
- No repitas el roadmap; solo consolida y convierte en acciones.
- Sin títulos largos, sin bloques de código, sin listas extensas.`

const fallbackAssignmentText = "Objetivo: Proyecto integrador aplicando el roadmap.\n" +
	"1. Módulo principal listo (pasa pruebas)\n" +
	"2. Feature que combine 2 conceptos del roadmap (funcional)\n" +
	"3. README y ejecución/despliegue listos (pasos claros)"

// AssignmentBuilder produces the capstone assignment that closes a plan.
type AssignmentBuilder struct {
	client llm.Client
}

func NewAssignmentBuilder(client llm.Client) *AssignmentBuilder {
	return &AssignmentBuilder{client: client}
}

// Build returns the capstone text. Both the generated and the fallback paths
// go through the same normalization and hard length cap, so the 1000-char
// limit holds no matter what the model returns.
func (b *AssignmentBuilder) Build(ctx context.Context, roadmap string, skills []domain.Skill) Outcome {
	out := generate(ctx, b.client, llm.Request{
		SystemPrompt: assignmentSystemPrompt,
		UserPrompt: "ROADMAP (resumen de lo aprendido):\n" + strings.TrimSpace(roadmap) +
			"\n\nSKILLS DADAS POR SABIDAS (pueden usarse en las tareas):\n" + domain.FormatSkills(skills) +
			"\n\nDevuelve SOLO el trabajo final, cumpliendo estrictamente con el máximo de 1000 caracteres y los pasos en líneas separadas.",
	}, func() string {
		return fallbackAssignmentText
	})

	out.Text = common.Shorten(common.NormalizeMrkdwn(out.Text), MaxAssignmentChars)
	return out
}
