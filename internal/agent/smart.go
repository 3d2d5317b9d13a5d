package agent

import (
	"context"
	"fmt"
	"strings"

	"pathwise.app/mentor/common"
	"pathwise.app/mentor/common/llm"
	"pathwise.app/mentor/internal/domain"
)

const smartSystemPrompt = `Eres un experto en planificación de objetivos. Convierte el objetivo del usuario en un objetivo SMART en español. Sigue estas pautas:
- Específico: qué quiere lograr exactamente.
- Medible: indicadores o métricas claras.
- Alcanzable: realista con los recursos y el nivel actual del usuario.
- Relevante: por qué importa para el usuario.
- Tiempo: usa exactamente el plazo indicado; con plazos cortos acota el alcance, con plazos largos sé más ambicioso.
Devuelve SOLO el objetivo final en una o dos oraciones, sin listas ni explicaciones adicionales.`

// SmartRewriter restates a raw objective as a SMART-formulated goal.
type SmartRewriter struct {
	client llm.Client
}

func NewSmartRewriter(client llm.Client) *SmartRewriter {
	return &SmartRewriter{client: client}
}

// Rewrite returns a SMART restatement of the objective. Output is always
// non-empty slack-style mrkdwn, whether generated or templated.
func (s *SmartRewriter) Rewrite(ctx context.Context, objective string, skills []domain.Skill, deadline string) Outcome {
	out := generate(ctx, s.client, llm.Request{
		SystemPrompt: smartSystemPrompt,
		UserPrompt: fmt.Sprintf(
			"Objetivo original:\n%s\n\nPlazo: %s\n\nSkills del usuario (contexto opcional):\n%s\n\nDevuelve el objetivo SMART.",
			objective, deadline, domain.FormatSkills(skills),
		),
	}, func() string {
		return fallbackSmart(objective, deadline)
	})

	out.Text = common.NormalizeMrkdwn(out.Text)
	return out
}

func fallbackSmart(objective, deadline string) string {
	text := strings.TrimSpace(objective)
	if text == "" {
		text = "Aprender un tema técnico relevante"
	}
	return fmt.Sprintf(
		"%s con un plan práctico y ejercicios, midiendo progreso con hitos semanales, asegurando avances realistas según disponibilidad, y logrando un entregable concreto en %s.",
		text, deadline,
	)
}
