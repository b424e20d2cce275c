package ai

import "github.com/pkoukk/tiktoken-go"

// truncateTokens cuts text down to at most maxTokens tokens so oversized
// articles never blow the provider's context window. Returns text unchanged
// when it already fits or when no encoder is available.
func truncateTokens(enc *tiktoken.Tiktoken, text string, maxTokens int) string {
	if enc == nil || maxTokens <= 0 {
		return text
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return enc.Decode(tokens[:maxTokens])
}
