package adapter

import "context"

// Sentiment is the classification result for a piece of text.
// Score runs from -1 (very negative) to +1 (very positive).
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AIProvider is the port for the platform's language capabilities.
//
// Implementations must return domain.ErrInvalidInput for blank text and must
// never surface provider outages to callers: the wiring wraps live providers
// with a fallback so enrichment keeps working while the backend is down.
type AIProvider interface {
	Summarize(ctx context.Context, text string) (string, error)
	ClassifySentiment(ctx context.Context, text string) (Sentiment, error)
	Categorize(ctx context.Context, text string) (string, error)
}
