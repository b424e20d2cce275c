package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"

	"newsroom-agents/internal/domain/ports/adapter"
)

var _ adapter.AIProvider = (*OpenAIProvider)(nil)

const (
	summarizePrompt = "You are a professional news summarizer. Create a concise summary of the following news article in under 100 words. Focus on the key facts, main points, and important details."
	sentimentPrompt = `You are a sentiment analysis expert. Analyze the sentiment of the given text and respond with JSON: {"label": "positive|negative|neutral", "score": number from -1 to 1}.`
)

// OpenAIProvider implements the AI capability port with the OpenAI SDK.
type OpenAIProvider struct {
	client openai.Client
	model  string
	maxIn  int
	enc    *tiktoken.Tiktoken
}

func NewOpenAIProvider(apiKey, model string, maxInputTokens int) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	// Best effort; a nil encoder just skips prompt truncation.
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		enc = nil
	}
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		maxIn:  maxInputTokens,
		enc:    enc,
	}, nil
}

func (p *OpenAIProvider) Summarize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	out, err := p.chat(ctx, summarizePrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *OpenAIProvider) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	if err := checkInput(text); err != nil {
		return adapter.Sentiment{}, err
	}
	out, err := p.chat(ctx, sentimentPrompt, text)
	if err != nil {
		return adapter.Sentiment{}, err
	}
	return parseSentiment(out)
}

func (p *OpenAIProvider) Categorize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(
		"You are a news categorization expert. Categorize the following text into one of these categories: %s. Respond with only the category name in lowercase.",
		strings.Join(Categories, ", "))
	out, err := p.chat(ctx, prompt, text)
	if err != nil {
		return "", err
	}
	category := strings.ToLower(strings.TrimSpace(out))
	if !validCategory(category) {
		category = "world"
	}
	return category, nil
}

func (p *OpenAIProvider) chat(ctx context.Context, system, user string) (string, error) {
	user = truncateTokens(p.enc, user, p.maxIn)
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", errors.New("openai: no choice content")
}

// parseSentiment tolerates fenced or prefixed JSON since models wrap output.
func parseSentiment(raw string) (adapter.Sentiment, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	var s adapter.Sentiment
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return adapter.Sentiment{}, fmt.Errorf("parse sentiment: %w", err)
	}
	if s.Score > 1 {
		s.Score = 1
	}
	if s.Score < -1 {
		s.Score = -1
	}
	switch strings.ToLower(s.Label) {
	case "positive", "negative", "neutral":
		s.Label = strings.ToLower(s.Label)
	default:
		s.Label = "neutral"
	}
	return s, nil
}
