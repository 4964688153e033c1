package casescout

import "time"

// Config holds runtime settings. It is populated by viper.Load and then
// overridden by command-line flags.
type Config struct {
	DBPath  string `mapstructure:"db_path"`
	Verbose bool   `mapstructure:"verbose"`

	Discovery  DiscoveryConfig  `mapstructure:"discovery"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Summary    SummaryConfig    `mapstructure:"summary"`
}

// DiscoveryConfig controls how candidate URLs are found and validated.
type DiscoveryConfig struct {
	Keywords KeywordSet `mapstructure:"keywords"`
	Quota    int        `mapstructure:"quota"`

	// Language is the English name a page's language must have to count
	// toward the quota. Empty accepts every page.
	Language string `mapstructure:"language"`

	// SkipFirst drops the first validated URL before extraction.
	SkipFirst bool `mapstructure:"skip_first"`

	// RespectRobots drops candidates disallowed by robots.txt.
	RespectRobots bool `mapstructure:"respect_robots"`
}

// ExtractionConfig selects the extraction engine and its cleaning rules.
type ExtractionConfig struct {
	// Engine is "heuristic", "trafilatura" or "readability".
	Engine       string `mapstructure:"engine"`
	Strict       bool   `mapstructure:"strict"`
	Sections     bool   `mapstructure:"sections"`
	Markdown     bool   `mapstructure:"markdown"`
	MaxBodyChars int    `mapstructure:"max_body_chars"`
	Concurrency  int    `mapstructure:"concurrency"`
}

// FetchConfig controls network behavior.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`

	// RatePerSecond is the per-domain request rate for page fetches.
	RatePerSecond float64 `mapstructure:"rate_per_second"`

	// Jitter is the upper bound of a random pause after each page request.
	Jitter  time.Duration `mapstructure:"jitter"`
	Retries int           `mapstructure:"retries"`
}

// SummaryConfig selects the summarization provider.
type SummaryConfig struct {
	// Provider is "openai", "anthropic" or "gemini".
	Provider  string `mapstructure:"provider"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Prompt    string `mapstructure:"prompt"`

	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
}

// APIKey returns the key configured for the selected provider.
func (c SummaryConfig) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	default:
		return c.OpenAIAPIKey
	}
}
