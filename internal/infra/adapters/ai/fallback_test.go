package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"newsroom-agents/internal/domain"
	ai "newsroom-agents/internal/infra/adapters/ai"
)

func TestFallbackSummarize_Deterministic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := ai.NewFallbackProvider()

	text := "The central bank raised rates today. Markets reacted calmly. " +
		"Analysts expect one more hike before the end of the year, citing persistent inflation."

	first, err := p.Summarize(ctx, text)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	second, _ := p.Summarize(ctx, text)
	if first != second {
		t.Fatalf("summary not deterministic: %q vs %q", first, second)
	}
	if !strings.HasPrefix(first, "The central bank raised rates today.") {
		t.Fatalf("summary should start with the first sentence, got %q", first)
	}
	if len(first) > 260 {
		t.Fatalf("summary too long: %d chars", len(first))
	}
}

func TestFallbackSummarize_LongSentenceCutAtWordBoundary(t *testing.T) {
	t.Parallel()
	p := ai.NewFallbackProvider()

	long := strings.Repeat("verylongword ", 60) // single sentence, no terminator
	got, err := p.Summarize(context.Background(), long)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("hard cut should end with ellipsis, got %q", got)
	}
	if strings.Contains(got, "verylongwor ") {
		t.Fatalf("cut landed mid-word: %q", got)
	}
}

func TestFallbackSummarize_BlankInput(t *testing.T) {
	t.Parallel()
	p := ai.NewFallbackProvider()
	if _, err := p.Summarize(context.Background(), "   \n\t"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestFallbackSentiment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := ai.NewFallbackProvider()

	cases := []struct {
		text  string
		label string
	}{
		{"Record growth and a strong recovery boost investor confidence.", "positive"},
		{"War and disaster deepen the crisis as markets crash.", "negative"},
		{"The committee met on Tuesday to discuss the agenda.", "neutral"},
	}
	for _, tc := range cases {
		s, err := p.ClassifySentiment(ctx, tc.text)
		if err != nil {
			t.Fatalf("sentiment(%q): %v", tc.text, err)
		}
		if s.Label != tc.label {
			t.Fatalf("sentiment(%q): want %s, got %s (score %.2f)", tc.text, tc.label, s.Label, s.Score)
		}
		if s.Score < -1 || s.Score > 1 {
			t.Fatalf("score out of range: %f", s.Score)
		}
	}
}

func TestFallbackCategorize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := ai.NewFallbackProvider()

	cases := []struct {
		text string
		want string
	}{
		{"The president addressed parliament ahead of the election vote.", "politics"},
		{"The startup shipped a new chip for artificial intelligence workloads.", "technology"},
		{"Scientists published a study on a newly discovered species.", "science"},
		{"An unremarkable note with no signal whatsoever.", "world"},
	}
	for _, tc := range cases {
		got, err := p.Categorize(ctx, tc.text)
		if err != nil {
			t.Fatalf("categorize(%q): %v", tc.text, err)
		}
		if got != tc.want {
			t.Fatalf("categorize(%q): want %s, got %s", tc.text, tc.want, got)
		}
	}
}
