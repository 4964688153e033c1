// Package viper loads casescout configuration from a YAML file and the
// environment.
package viper

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/casescout"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CASESCOUT_DISCOVERY_QUOTA.
const EnvPrefix = "CASESCOUT"

// DefaultConfigPath returns ~/.casescout/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), ".casescout", "config.yaml")
}

// DefaultDBPath returns ~/.casescout/casescout.db.
func DefaultDBPath() string {
	return filepath.Join(homeDir(), ".casescout", "casescout.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Load reads configuration from path, then applies environment overrides
// on top of defaults. A missing file is not an error when path is empty or
// the default location; an explicitly named file that does not exist is.
func Load(path string) (*casescout.Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are read under their conventional names.
	_ = v.BindEnv("summary.openai_api_key", EnvPrefix+"_SUMMARY_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("summary.anthropic_api_key", EnvPrefix+"_SUMMARY_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("summary.gemini_api_key", EnvPrefix+"_SUMMARY_GEMINI_API_KEY", "GEMINI_API_KEY")

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return nil, casescout.Errorf(casescout.ENOTFOUND, "config file %s not found", path)
		default:
			return nil, casescout.Errorf(casescout.EINVALID, "read config %s: %v", path, err)
		}
	}

	var cfg casescout.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, casescout.Errorf(casescout.EINVALID, "parse config: %v", err)
	}

	// A comma-separated env value arrives as a single element.
	if len(cfg.Discovery.Keywords) == 1 && strings.Contains(cfg.Discovery.Keywords[0], ",") {
		cfg.Discovery.Keywords = strings.Split(cfg.Discovery.Keywords[0], ",")
	}
	cfg.Discovery.Keywords = casescout.NewKeywordSet(cfg.Discovery.Keywords...)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("verbose", false)

	v.SetDefault("discovery.keywords", []string(casescout.DefaultKeywords))
	v.SetDefault("discovery.quota", 5)
	v.SetDefault("discovery.language", "English")
	v.SetDefault("discovery.skip_first", false)
	v.SetDefault("discovery.respect_robots", false)

	v.SetDefault("extraction.engine", "heuristic")
	v.SetDefault("extraction.strict", false)
	v.SetDefault("extraction.sections", false)
	v.SetDefault("extraction.markdown", false)
	v.SetDefault("extraction.max_body_chars", 0)
	v.SetDefault("extraction.concurrency", 1)

	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.rate_per_second", 1.0)
	v.SetDefault("fetch.jitter", time.Duration(0))
	v.SetDefault("fetch.retries", 0)

	v.SetDefault("summary.provider", "openai")
	v.SetDefault("summary.model", "")
	v.SetDefault("summary.max_tokens", 2000)
	v.SetDefault("summary.prompt", casescout.DefaultPrompt)
}

// Validate checks settings that would otherwise fail deep inside a command.
func Validate(cfg *casescout.Config) error {
	if cfg.Discovery.Quota < casescout.MinQuota || cfg.Discovery.Quota > casescout.MaxQuota {
		return casescout.Errorf(casescout.EINVALID, "discovery.quota must be between %d and %d, got %d",
			casescout.MinQuota, casescout.MaxQuota, cfg.Discovery.Quota)
	}
	if len(cfg.Discovery.Keywords) == 0 {
		return casescout.Errorf(casescout.EINVALID, "discovery.keywords must not be empty")
	}
	switch cfg.Extraction.Engine {
	case "heuristic", "trafilatura", "readability":
	default:
		return casescout.Errorf(casescout.EINVALID, "unknown extraction.engine %q", cfg.Extraction.Engine)
	}
	switch cfg.Summary.Provider {
	case "openai", "anthropic", "gemini":
	default:
		return casescout.Errorf(casescout.EINVALID, "unknown summary.provider %q", cfg.Summary.Provider)
	}
	if cfg.Extraction.Concurrency < 1 {
		return casescout.Errorf(casescout.EINVALID, "extraction.concurrency must be positive")
	}
	if cfg.Fetch.Retries < 0 {
		return casescout.Errorf(casescout.EINVALID, "fetch.retries must not be negative")
	}
	if cfg.Fetch.Jitter < 0 {
		return casescout.Errorf(casescout.EINVALID, "fetch.jitter must not be negative")
	}
	if cfg.Fetch.Timeout <= 0 {
		return casescout.Errorf(casescout.EINVALID, "fetch.timeout must be positive")
	}
	return nil
}
