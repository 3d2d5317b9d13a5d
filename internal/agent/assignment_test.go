package agent

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestAssignmentFallback(t *testing.T) {
	b := NewAssignmentBuilder(nil)

	out := b.Build(context.Background(), "roadmap previo", nil)
	if out.Origin != OriginFallback {
		t.Fatalf("origin = %v, want fallback", out.Origin)
	}
	if !strings.Contains(out.Text, "Proyecto integrador") {
		t.Errorf("unexpected fallback text: %q", out.Text)
	}
	if utf8.RuneCountInString(out.Text) > MaxAssignmentChars {
		t.Errorf("fallback exceeds %d chars: %d", MaxAssignmentChars, utf8.RuneCountInString(out.Text))
	}
}

func TestAssignmentCapsModelOutput(t *testing.T) {
	long := strings.Repeat("Construye un módulo con pruebas automatizadas. ", 60)
	client := &fakeLLM{responses: []string{long}}
	b := NewAssignmentBuilder(client)

	out := b.Build(context.Background(), "roadmap", nil)
	if out.Origin != OriginGenerated {
		t.Fatalf("origin = %v, want generated", out.Origin)
	}
	if got := utf8.RuneCountInString(out.Text); got > MaxAssignmentChars {
		t.Fatalf("assignment length = %d, want <= %d", got, MaxAssignmentChars)
	}
	if !strings.HasSuffix(out.Text, "…") {
		t.Error("truncated assignment must end with an ellipsis")
	}
}

func TestAssignmentNormalizesListVariants(t *testing.T) {
	client := &fakeLLM{responses: []string{"Objetivo: practicar. 1) Construye la API 2) Escribe pruebas"}}
	b := NewAssignmentBuilder(client)

	out := b.Build(context.Background(), "roadmap", nil)
	if strings.Contains(out.Text, "1)") {
		t.Errorf("numbered-list variants must be canonicalized, got %q", out.Text)
	}
	if !strings.Contains(out.Text, "1. ") || !strings.Contains(out.Text, "2. ") {
		t.Errorf("expected canonical numbering, got %q", out.Text)
	}
}

func TestAssignmentCollapsesWhitespace(t *testing.T) {
	client := &fakeLLM{responses: []string{"Objetivo:   hacer\n\nalgo    útil"}}
	b := NewAssignmentBuilder(client)

	out := b.Build(context.Background(), "roadmap", nil)
	if strings.Contains(out.Text, "\n") || strings.Contains(out.Text, "  ") {
		t.Errorf("whitespace must collapse to single spaces, got %q", out.Text)
	}
}
