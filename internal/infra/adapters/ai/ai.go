package ai

import (
	"strings"

	"newsroom-agents/internal/domain"
)

// Categories is the platform's fixed news taxonomy. Categorize results
// outside this set are coerced to "world".
var Categories = []string{
	"world", "politics", "business", "technology",
	"sports", "entertainment", "health", "science",
}

func validCategory(c string) bool {
	c = strings.ToLower(strings.TrimSpace(c))
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// checkInput enforces the one error every provider may raise for bad input.
func checkInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}
