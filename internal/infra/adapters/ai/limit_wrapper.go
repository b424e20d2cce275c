package ai

import (
	"context"

	"newsroom-agents/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.AIProvider = (*limitedAI)(nil)

type limitedAI struct {
	inner adapter.AIProvider
	sem   chan struct{}
}

// NewLimitedAI caps in-flight calls to the wrapped provider.
func NewLimitedAI(inner adapter.AIProvider, maxConcurrent int) adapter.AIProvider {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedAI{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedAI) Summarize(ctx context.Context, text string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Summarize(ctx, text)
}

func (l *limitedAI) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.ClassifySentiment(ctx, text)
}

func (l *limitedAI) Categorize(ctx context.Context, text string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Categorize(ctx, text)
}
