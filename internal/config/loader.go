// Package config provides configuration loading utilities.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinkerloft/promptshape/internal/generate"
	"github.com/tinkerloft/promptshape/internal/prompt"
)

// SupportedVersions lists all schema versions supported by this loader.
var SupportedVersions = []int{1}

// Environment variables read by the loader.
const (
	EnvConfigPath = "PROMPTSHAPE_CONFIG"
	EnvServerAddr = "PROMPTSHAPE_SERVER_ADDR"
	EnvProvider   = "PROMPTSHAPE_PROVIDER"
	EnvModel      = "PROMPTSHAPE_MODEL"
)

// DefaultServerAddr is the HTTP listen address when none is configured.
const DefaultServerAddr = ":8080"

// Config is the resolved promptshape configuration.
type Config struct {
	Version    int
	Generation GenerationConfig
	Knowledge  KnowledgeConfig
	Server     ServerConfig
	Logging    LoggingConfig
	Slack      SlackConfig
}

// GenerationConfig selects the provider and its fixed parameters.
type GenerationConfig struct {
	Provider    string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int64
}

// Params converts the generation section into generate.Params.
func (g GenerationConfig) Params() generate.Params {
	return generate.Params{Model: g.Model, Temperature: g.Temperature, MaxTokens: g.MaxTokens}
}

// KnowledgeConfig points at an optional corpus source.
type KnowledgeConfig struct {
	// Path is a corpus file or directory. Empty selects the built-in corpus.
	Path string
	// TopK is how many entries RAG injects.
	TopK int
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// SlackConfig is the optional answer sink.
type SlackConfig struct {
	Channel string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	params := generate.DefaultParams(generate.ProviderOpenAI)
	return &Config{
		Version: 1,
		Generation: GenerationConfig{
			Provider:    generate.ProviderOpenAI,
			Model:       params.Model,
			Temperature: params.Temperature,
			MaxTokens:   params.MaxTokens,
		},
		Knowledge: KnowledgeConfig{TopK: prompt.DefaultTopK},
		Server:    ServerConfig{Addr: DefaultServerAddr},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// versionHeader is used to extract just the version from YAML.
type versionHeader struct {
	Version *int `yaml:"version"`
}

// Load parses a configuration document with schema version validation.
func Load(data []byte) (*Config, error) {
	var header versionHeader
	if err := yaml.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if header.Version == nil {
		return nil, errors.New("version field is required")
	}

	switch *header.Version {
	case 1:
		return loadV1(data)
	default:
		return nil, fmt.Errorf("unsupported schema version: %d (supported: %v)", *header.Version, SupportedVersions)
	}
}

// LoadFile loads a configuration from a YAML file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Load(data)
}

// Resolve loads path (or $PROMPTSHAPE_CONFIG when path is empty), falling
// back to Default, then applies environment overrides.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvServerAddr); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvProvider); v != "" && v != cfg.Generation.Provider {
		if err := validateProvider(v); err != nil {
			return fmt.Errorf("%s: %w", EnvProvider, err)
		}
		cfg.Generation.Provider = v
		// The configured model belongs to the previous provider.
		cfg.Generation.Model = generate.DefaultParams(v).Model
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Generation.Model = v
	}
	return nil
}

func validateProvider(provider string) error {
	if provider != generate.ProviderOpenAI && provider != generate.ProviderAnthropic {
		return fmt.Errorf("generation.provider must be %q or %q, got %q",
			generate.ProviderOpenAI, generate.ProviderAnthropic, provider)
	}
	return nil
}

// configV1 is the internal representation for schema version 1.
type configV1 struct {
	Version    int           `yaml:"version"`
	Generation *generationV1 `yaml:"generation,omitempty"`
	Knowledge  *knowledgeV1  `yaml:"knowledge,omitempty"`
	Server     *serverV1     `yaml:"server,omitempty"`
	Logging    *loggingV1    `yaml:"logging,omitempty"`
	Slack      *slackV1      `yaml:"slack,omitempty"`
}

type generationV1 struct {
	Provider    string   `yaml:"provider,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	MaxTokens   int64    `yaml:"max_tokens,omitempty"`
}

type knowledgeV1 struct {
	Path string `yaml:"path,omitempty"`
	TopK int    `yaml:"top_k,omitempty"`
}

type serverV1 struct {
	Addr string `yaml:"addr,omitempty"`
}

type loggingV1 struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type slackV1 struct {
	Channel string `yaml:"channel,omitempty"`
}

// loadV1 loads a version 1 config from YAML data.
func loadV1(data []byte) (*Config, error) {
	var cv1 configV1
	if err := yaml.Unmarshal(data, &cv1); err != nil {
		return nil, fmt.Errorf("failed to parse config v1: %w", err)
	}

	cfg := Default()

	if g := cv1.Generation; g != nil {
		if g.Provider != "" {
			if err := validateProvider(g.Provider); err != nil {
				return nil, err
			}
			cfg.Generation.Provider = g.Provider
			cfg.Generation.Model = generate.DefaultParams(g.Provider).Model
		}
		if g.Model != "" {
			cfg.Generation.Model = g.Model
		}
		cfg.Generation.BaseURL = g.BaseURL
		if g.Temperature != nil {
			if *g.Temperature < 0 || *g.Temperature > 2 {
				return nil, fmt.Errorf("generation.temperature must be between 0 and 2, got %v", *g.Temperature)
			}
			cfg.Generation.Temperature = *g.Temperature
		}
		if g.MaxTokens < 0 {
			return nil, fmt.Errorf("generation.max_tokens must be positive, got %d", g.MaxTokens)
		}
		if g.MaxTokens > 0 {
			cfg.Generation.MaxTokens = g.MaxTokens
		}
	}

	if k := cv1.Knowledge; k != nil {
		if k.TopK < 0 {
			return nil, fmt.Errorf("knowledge.top_k must be positive, got %d", k.TopK)
		}
		cfg.Knowledge.Path = k.Path
		if k.TopK > 0 {
			cfg.Knowledge.TopK = k.TopK
		}
	}

	if cv1.Server != nil && cv1.Server.Addr != "" {
		cfg.Server.Addr = cv1.Server.Addr
	}

	if l := cv1.Logging; l != nil {
		if l.Level != "" {
			cfg.Logging.Level = l.Level
		}
		if l.Format != "" {
			if l.Format != "text" && l.Format != "json" {
				return nil, fmt.Errorf("logging.format must be text or json, got %q", l.Format)
			}
			cfg.Logging.Format = l.Format
		}
	}

	if cv1.Slack != nil {
		cfg.Slack.Channel = cv1.Slack.Channel
	}

	return cfg, nil
}
