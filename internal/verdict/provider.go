// Package verdict synthesizes bounded food-safety verdicts from
// free-form generative-text output.
package verdict

import (
	"context"
	"fmt"

	"github.com/ppiankov/mediguard/internal/model"
)

// Provider defines the interface for generative-text providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces a single completion for the request
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for text generation
type GenerateRequest struct {
	// Prompt is the full prompt text
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the provider's output
type GenerateResponse struct {
	// Text is the raw generated text, possibly containing a
	// private-reasoning segment
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// systemPrompt keeps providers aligned on the task framing
const systemPrompt = "You are a nutrition assistant that evaluates whether a dish is suitable for a medical condition."

// BuildPrompt constructs the fixed verdict prompt. The concluding
// keyword on its own line is what the parser extracts afterwards.
func BuildPrompt(foodName, ingredients, condition string) string {
	if ingredients == "" {
		ingredients = "Not specified"
	}
	return fmt.Sprintf(`You are a nutrition assistant. Given the dish: %s
with ingredients: %s
and the medical condition: %s,
Detail in a single paragraph whether it is SAFE, CAUTION, or AVOID for this condition, and why.
End with a concluding word on a new line: SAFE, CAUTION, or AVOID.`, foodName, ingredients, condition)
}

// Classifications lists the bounded vocabulary in extraction priority
// order. The parser derives its trailing-keyword rules from this slice.
var Classifications = []model.Classification{
	model.ClassificationSafe,
	model.ClassificationCaution,
	model.ClassificationAvoid,
}
