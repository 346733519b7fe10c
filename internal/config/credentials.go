package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tinkerloft/promptshape/internal/generate"
)

// Credential environment variables.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
	EnvSlackToken   = "SLACK_BOT_TOKEN"
)

// ValidationMode controls how credential validation behaves.
type ValidationMode int

const (
	// ModeWarn logs warnings for missing credentials but allows startup.
	ModeWarn ValidationMode = iota
	// ModeRequire returns an error if a required credential is missing.
	ModeRequire
)

// Issue represents a configuration problem found during validation.
type Issue struct {
	Name        string // Environment variable or config name
	Description string // What the issue is
	Required    bool   // Whether this blocks answer generation
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	return os.Getenv(apiKeyEnv(c.Generation.Provider))
}

// SlackToken returns the Slack bot token, if any.
func (c *Config) SlackToken() string {
	return os.Getenv(EnvSlackToken)
}

// GeneratorOptions builds the options for generate.New.
func (c *Config) GeneratorOptions() generate.Options {
	return generate.Options{
		Provider: c.Generation.Provider,
		APIKey:   c.APIKey(),
		BaseURL:  c.Generation.BaseURL,
		Params:   c.Generation.Params(),
	}
}

func apiKeyEnv(provider string) string {
	if provider == generate.ProviderAnthropic {
		return EnvAnthropicKey
	}
	return EnvOpenAIKey
}

// ValidateCredentials checks that the secrets cfg needs are present.
func ValidateCredentials(cfg *Config) []Issue {
	var issues []Issue

	keyEnv := apiKeyEnv(cfg.Generation.Provider)
	if os.Getenv(keyEnv) == "" {
		issues = append(issues, Issue{
			Name:        keyEnv,
			Description: fmt.Sprintf("Required for answers from the %s provider", cfg.Generation.Provider),
			Required:    true,
		})
	}

	if cfg.Slack.Channel != "" && os.Getenv(EnvSlackToken) == "" {
		issues = append(issues, Issue{
			Name:        EnvSlackToken,
			Description: "Answers will not be posted to slack channel " + cfg.Slack.Channel,
			Required:    false,
		})
	}

	return issues
}

// CheckCredentials validates credentials and handles issues according to mode.
// In ModeWarn, it logs warnings and returns nil.
// In ModeRequire, it returns an error if any required credential is missing.
func CheckCredentials(cfg *Config, mode ValidationMode, logger *slog.Logger) error {
	issues := ValidateCredentials(cfg)
	if len(issues) == 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	var requiredMissing []string
	for _, issue := range issues {
		if issue.Required {
			requiredMissing = append(requiredMissing, issue.Name)
		}
		logger.Warn("configuration incomplete", "name", issue.Name, "detail", issue.Description)
	}

	if mode == ModeRequire && len(requiredMissing) > 0 {
		return fmt.Errorf("required configuration missing: %s", strings.Join(requiredMissing, ", "))
	}

	return nil
}
