// Package generate sends shaped conversations to a generative-text provider.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tinkerloft/promptshape/internal/model"
)

// Provider names.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default generation parameters.
const (
	DefaultTemperature    = 0.2
	DefaultMaxTokens      = 500
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-haiku-4-5"
)

var (
	// ErrUnknownProvider is returned for provider names other than openai or anthropic.
	ErrUnknownProvider = errors.New("unknown generation provider")
	// ErrMissingAPIKey is returned when no credential is available for the provider.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("provider returned no text")
)

// Generator produces an answer for a conversation.
type Generator interface {
	Generate(ctx context.Context, conv model.Conversation) (string, error)
	Provider() string
}

// Params are the fixed generation parameters sent with every request.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   int64
}

// Options selects and configures a provider.
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Params   Params
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams(provider string) Params {
	p := Params{Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens}
	switch provider {
	case ProviderAnthropic:
		p.Model = DefaultAnthropicModel
	default:
		p.Model = DefaultOpenAIModel
	}
	return p
}

func (p Params) withDefaults(provider string) Params {
	d := DefaultParams(provider)
	if p.Model == "" {
		p.Model = d.Model
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = d.MaxTokens
	}
	return p
}

// New builds the Generator named by opts.Provider.
func New(opts Options) (Generator, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", opts.Provider, ErrMissingAPIKey)
	}
	switch opts.Provider {
	case ProviderOpenAI:
		return NewOpenAI(opts.APIKey, opts.BaseURL, opts.Params), nil
	case ProviderAnthropic:
		return NewAnthropic(opts.APIKey, opts.BaseURL, opts.Params), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// UserMessage renders a generation failure as the single line shown to a user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: unable to get an answer from the model (%s)", strings.TrimSpace(err.Error()))
}
