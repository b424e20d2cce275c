package ai

import (
	"context"
	"strings"

	"newsroom-agents/internal/domain/ports/adapter"
)

var _ adapter.AIProvider = (*FallbackProvider)(nil)

const fallbackSummaryLimit = 240

// FallbackProvider is the deterministic local substitute used while no AI
// backend is reachable: extractive truncation for summaries, a signed word
// lexicon for sentiment, keyword rules for categories. Same input, same
// output, no network.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

func (p *FallbackProvider) Summarize(_ context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	text = strings.Join(strings.Fields(text), " ")

	// Accumulate whole sentences while they fit; hard-cut at a word boundary
	// when even the first sentence is too long.
	var b strings.Builder
	for _, sentence := range splitSentences(text) {
		if b.Len() > 0 && b.Len()+len(sentence)+1 > fallbackSummaryLimit {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
		if b.Len() > fallbackSummaryLimit {
			break
		}
	}
	summary := b.String()
	if len(summary) > fallbackSummaryLimit {
		cut := summary[:fallbackSummaryLimit]
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
		summary = cut + "..."
	}
	return summary, nil
}

func (p *FallbackProvider) ClassifySentiment(_ context.Context, text string) (adapter.Sentiment, error) {
	if err := checkInput(text); err != nil {
		return adapter.Sentiment{}, err
	}
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()[]")
		if positiveWords[word] {
			pos++
		}
		if negativeWords[word] {
			neg++
		}
	}
	if pos+neg == 0 {
		return adapter.Sentiment{Label: "neutral", Score: 0}, nil
	}
	score := float64(pos-neg) / float64(pos+neg)
	label := "neutral"
	switch {
	case score > 0.25:
		label = "positive"
	case score < -0.25:
		label = "negative"
	}
	return adapter.Sentiment{Label: label, Score: score}, nil
}

func (p *FallbackProvider) Categorize(_ context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	lower := strings.ToLower(text)
	best, bestHits := "world", 0
	for _, category := range Categories {
		hits := 0
		for _, kw := range categoryKeywords[category] {
			hits += strings.Count(lower, kw)
		}
		if hits > bestHits {
			best, bestHits = category, hits
		}
	}
	return best, nil
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

var positiveWords = map[string]bool{
	"win": true, "wins": true, "won": true, "growth": true, "gain": true,
	"gains": true, "success": true, "successful": true, "record": true,
	"breakthrough": true, "improve": true, "improved": true, "improves": true,
	"rise": true, "rises": true, "surge": true, "strong": true, "boost": true,
	"recovery": true, "agreement": true, "peace": true, "celebrate": true,
}

var negativeWords = map[string]bool{
	"crisis": true, "crash": true, "death": true, "deaths": true, "dead": true,
	"war": true, "attack": true, "loss": true, "losses": true, "fail": true,
	"fails": true, "failed": true, "failure": true, "decline": true,
	"fall": true, "falls": true, "fraud": true, "scandal": true, "fear": true,
	"disaster": true, "emergency": true, "threat": true, "collapse": true,
}

var categoryKeywords = map[string][]string{
	"politics":      {"election", "parliament", "senate", "minister", "president", "policy", "vote", "government"},
	"business":      {"market", "stocks", "economy", "earnings", "revenue", "inflation", "trade", "investor"},
	"technology":    {"software", "startup", "silicon", "chip", "internet", "cyber", "robot", "artificial intelligence"},
	"sports":        {"match", "tournament", "league", "championship", "goal", "coach", "olympic", "season"},
	"entertainment": {"film", "movie", "album", "celebrity", "festival", "premiere", "box office", "concert"},
	"health":        {"hospital", "vaccine", "disease", "patient", "clinical", "epidemic", "medical", "doctors"},
	"science":       {"research", "study", "scientists", "telescope", "climate", "species", "physics", "discovery"},
	"world":         {"united nations", "border", "embassy", "diplomatic", "treaty", "summit"},
}
