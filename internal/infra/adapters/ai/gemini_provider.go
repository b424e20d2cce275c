package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"newsroom-agents/internal/domain/ports/adapter"
)

var _ adapter.AIProvider = (*GeminiProvider)(nil)

// GeminiProvider implements the AI capability port using the official SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, baseURL, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiProvider{client: c, model: model}, nil
}

func (p *GeminiProvider) Summarize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	out, err := p.generate(ctx, summarizePrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (p *GeminiProvider) ClassifySentiment(ctx context.Context, text string) (adapter.Sentiment, error) {
	if err := checkInput(text); err != nil {
		return adapter.Sentiment{}, err
	}
	out, err := p.generate(ctx, sentimentPrompt, text)
	if err != nil {
		return adapter.Sentiment{}, err
	}
	return parseSentiment(out)
}

func (p *GeminiProvider) Categorize(ctx context.Context, text string) (string, error) {
	if err := checkInput(text); err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(
		"You are a news categorization expert. Categorize the following text into one of these categories: %s. Respond with only the category name in lowercase.",
		strings.Join(Categories, ", "))
	out, err := p.generate(ctx, prompt, text)
	if err != nil {
		return "", err
	}
	category := strings.ToLower(strings.TrimSpace(out))
	if !validCategory(category) {
		category = "world"
	}
	return category, nil
}

func (p *GeminiProvider) generate(ctx context.Context, instruction, text string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		[]*genai.Content{
			{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}},
		},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	)
	if err != nil {
		return "", err
	}
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", errors.New("gemini: empty response")
}
