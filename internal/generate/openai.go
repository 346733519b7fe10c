package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tinkerloft/promptshape/internal/model"
)

// OpenAIGenerator answers through the OpenAI chat completions API.
type OpenAIGenerator struct {
	client openai.Client
	params Params
}

// NewOpenAI creates an OpenAIGenerator. baseURL may be empty.
func NewOpenAI(apiKey, baseURL string, params Params, opts ...openaiopt.RequestOption) *OpenAIGenerator {
	clientOpts := []openaiopt.RequestOption{openaiopt.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(baseURL))
	}
	clientOpts = append(clientOpts, opts...)
	return &OpenAIGenerator{
		client: openai.NewClient(clientOpts...),
		params: params.withDefaults(ProviderOpenAI),
	}
}

// Provider implements Generator.
func (g *OpenAIGenerator) Provider() string {
	return ProviderOpenAI
}

// Generate implements Generator.
func (g *OpenAIGenerator) Generate(ctx context.Context, conv model.Conversation) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, buildChatRequest(conv, g.params))
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

func buildChatRequest(conv model.Conversation, params Params) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: shared.ChatModel(params.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(conv.System().Content),
			openai.UserMessage(conv.User().Content),
		},
		Temperature:         openai.Float(params.Temperature),
		MaxCompletionTokens: openai.Int(params.MaxTokens),
	}
}
