package domain

import (
	"fmt"
	"strings"
)

// Skill is a caller-supplied, immutable description of something the user
// already knows. All fields are optional; Categories preserves the caller's
// order for display.
type Skill struct {
	Name        string
	Proficiency string
	Categories  []string
}

// Line renders the skill as a single prompt-friendly line, e.g.
// "- React (intermedio) - frontend, web". Returns "" for an empty skill.
func (s Skill) Line() string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return ""
	}
	line := "- " + name
	if s.Proficiency != "" {
		line += fmt.Sprintf(" (%s)", s.Proficiency)
	}
	if len(s.Categories) > 0 {
		line += " - " + strings.Join(s.Categories, ", ")
	}
	return line
}

// FormatSkills renders a skills list for prompt embedding, one per line.
// Empty entries are skipped; an empty list yields the fixed placeholder the
// prompts key off to start from fundamentals.
func FormatSkills(skills []Skill) string {
	lines := make([]string, 0, len(skills))
	for _, s := range skills {
		if line := s.Line(); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "(sin skills registradas)"
	}
	return strings.Join(lines, "\n")
}
