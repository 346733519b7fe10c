package generate

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tinkerloft/promptshape/internal/model"
)

// AnthropicGenerator answers through the Anthropic Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	params Params
}

// NewAnthropic creates an AnthropicGenerator. baseURL may be empty.
func NewAnthropic(apiKey, baseURL string, params Params, opts ...option.RequestOption) *AnthropicGenerator {
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)
	return &AnthropicGenerator{
		client: anthropic.NewClient(clientOpts...),
		params: params.withDefaults(ProviderAnthropic),
	}
}

// Provider implements Generator.
func (g *AnthropicGenerator) Provider() string {
	return ProviderAnthropic
}

// Generate implements Generator. The system turn is sent as the system
// prompt and the user turn as the only message.
func (g *AnthropicGenerator) Generate(ctx context.Context, conv model.Conversation) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.params.Model),
		MaxTokens:   g.params.MaxTokens,
		Temperature: anthropic.Float(g.params.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: conv.System().Content},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					{OfText: &anthropic.TextBlockParam{Text: conv.User().Content}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}
