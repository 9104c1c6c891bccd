package model

import "time"

// Config holds the complete mediguard configuration. It is built once
// at startup (defaults, then config file, then env vars, then flags)
// and passed into adapters; it is never mutated at runtime.
type Config struct {
	Imagga   ImaggaConfig   `yaml:"imagga" mapstructure:"imagga"`
	USDA     USDAConfig     `yaml:"usda" mapstructure:"usda"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	OpenFDA  OpenFDAConfig  `yaml:"openfda" mapstructure:"openfda"`
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
}

// ImaggaConfig configures the vision tagging service adapter
type ImaggaConfig struct {
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	APISecret string `yaml:"api_secret" mapstructure:"api_secret"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// USDAConfig configures the nutrition search service adapter
type USDAConfig struct {
	APIKey   string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	PageSize int    `yaml:"page_size" mapstructure:"page_size"`
}

// LLMConfig configures the generative-text service used for verdict
// synthesis
type LLMConfig struct {
	// Provider name: "ollama", "openai", "anthropic"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic (Ollama needs none)
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g. Ollama)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for generation requests, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OpenFDAConfig configures the drug label search adapter
type OpenFDAConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig configures outbound HTTP behavior shared by adapters
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// PipelineConfig holds pipeline policy knobs
type PipelineConfig struct {
	// ProfilePolicy selects the person-tag acceptance policy:
	// "lenient" (any of the top 10 tags) or "strict" (top-1 only).
	// Both behaviors exist upstream and are deliberately preserved.
	ProfilePolicy string `yaml:"profile_policy" mapstructure:"profile_policy"`
}

// BatchConfig configures concurrent batch screening
type BatchConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Imagga: ImaggaConfig{
			BaseURL: "https://api.imagga.com/v2",
		},
		USDA: USDAConfig{
			BaseURL:  "https://api.nal.usda.gov/fdc/v1",
			PageSize: 15,
		},
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "deepseek-r1:latest",
			BaseURL:   "http://localhost:11434",
			Timeout:   60,
			MaxTokens: 1000,
		},
		OpenFDA: OpenFDAConfig{
			BaseURL: "https://api.fda.gov",
		},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Pipeline: PipelineConfig{
			ProfilePolicy: "lenient",
		},
		Batch: BatchConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             4,
		},
	}
}
