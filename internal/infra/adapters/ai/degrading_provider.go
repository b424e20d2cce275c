package ai

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"newsroom-agents/internal/domain"
	"newsroom-agents/internal/domain/ports/adapter"
	"newsroom-agents/internal/infra/metrics"
)

var _ adapter.AIProvider = (*DegradingProvider)(nil)

// DegradingProvider wraps a live provider with the local fallback. A nil
// live provider (no credential configured) or any live-call error routes the
// request to the fallback. Degradation is logged, never returned: callers
// always get a usable result or ErrInvalidInput.
type DegradingProvider struct {
	live     adapter.AIProvider
	fallback adapter.AIProvider
	log      *zerolog.Logger
}

func NewDegradingProvider(live adapter.AIProvider, fallback adapter.AIProvider, logger *zerolog.Logger) *DegradingProvider {
	l := logger.With().Str("component", "AIProvider").Logger()
	return &DegradingProvider{live: live, fallback: fallback, log: &l}
}

func (p *DegradingProvider) Summarize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	return call(p, ctx, "summarize", text, adapter.AIProvider.Summarize)
}

func (p *DegradingProvider) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	if err := checkInput(text); err != nil {
		return adapter.Sentiment{}, err
	}
	return call(p, ctx, "sentiment", text, adapter.AIProvider.ClassifySentiment)
}

func (p *DegradingProvider) Categorize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	return call(p, ctx, "categorize", text, adapter.AIProvider.Categorize)
}

// call runs op against the live provider and silently degrades to the
// fallback. ErrInvalidInput is the one error that is never absorbed.
func call[T any](p *DegradingProvider, ctx context.Context, op, text string, fn func(adapter.AIProvider, context.Context, string) (T, error)) (T, error) {
	if p.live != nil {
		start := time.Now()
		out, err := fn(p.live, ctx, text)
		latency := float64(time.Since(start)) / float64(time.Millisecond)
		if err == nil {
			metrics.ObserveAICall(op, "live", latency)
			return out, nil
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			var zero T
			return zero, err
		}
		p.log.Warn().Err(err).Str("op", op).Msg("live AI call failed; serving local fallback")
	}

	start := time.Now()
	out, err := fn(p.fallback, ctx, text)
	metrics.ObserveAICall(op, "fallback", float64(time.Since(start))/float64(time.Millisecond))
	return out, err
}
