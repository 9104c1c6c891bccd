package verdict

import (
	"fmt"
	"strings"

	"github.com/ppiankov/mediguard/internal/model"
)

// NewProvider creates a generative-text provider based on configuration
func NewProvider(cfg model.LLMConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama", "":
		return NewOllamaProvider(cfg)

	case "openai":
		return NewOpenAIProvider(cfg)

	case "anthropic", "claude":
		return NewAnthropicProvider(cfg)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai, anthropic)", cfg.Provider)
	}
}
