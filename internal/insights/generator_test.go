package insights

import (
	"context"
	"strings"
	"testing"
)

func TestSpendingInsightsWithoutKey(t *testing.T) {
	g := NewGenerator("", "gemini-2.5-flash")
	got := g.SpendingInsights(context.Background(), nil, "Nov-2025")
	if got != missingKey {
		t.Errorf("got %q, want the missing-key message", got)
	}
}

func TestSpendingInsightsNilGenerator(t *testing.T) {
	var g *Generator
	if got := g.SpendingInsights(context.Background(), nil, "Nov-2025"); got != missingKey {
		t.Errorf("nil generator returned %q", got)
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Nov-2025", `[{"date":"2025-11-10","desc":"Supermarket","cat":"Food","amount":21.59}]`)
	for _, want := range []string{"Nov-2025", "Supermarket", "EKSPENCE", "Three specific, actionable bullet points"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
