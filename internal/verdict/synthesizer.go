package verdict

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/mediguard/internal/model"
)

// Synthesizer builds the verdict prompt, invokes the generative-text
// provider and parses the free-form answer into a bounded verdict.
type Synthesizer struct {
	provider Provider
	logger   *slog.Logger
}

// NewSynthesizer creates a synthesizer on top of a provider
func NewSynthesizer(provider Provider, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		provider: provider,
		logger:   logger,
	}
}

// Available reports whether the underlying provider is reachable and
// properly configured. Used by health reporting; a down provider still
// degrades per-request via the UNKNOWN path.
func (s *Synthesizer) Available(ctx context.Context) bool {
	return s.provider.IsAvailable(ctx)
}

// Synthesize produces a SafetyVerdict for a food and condition pair.
// Transport or service failure is terminal and user-visible: the
// narrative carries the error and the classification is UNKNOWN. No
// retry.
func (s *Synthesizer) Synthesize(ctx context.Context, foodName, ingredients, condition string) model.SafetyVerdict {
	prompt := BuildPrompt(foodName, ingredients, condition)

	resp, err := s.provider.Generate(ctx, GenerateRequest{Prompt: prompt})
	if err != nil {
		s.logger.Warn("verdict generation failed", "provider", s.provider.Name(), "food", foodName, "error", err)
		return model.SafetyVerdict{
			Narrative:      fmt.Sprintf("Error contacting %s: %v", s.provider.Name(), err),
			Classification: model.ClassificationUnknown,
		}
	}

	if resp.Text == "" {
		return model.SafetyVerdict{
			Narrative:      "No detailed info found.",
			Classification: model.ClassificationUnknown,
		}
	}

	return Parse(resp.Text)
}
