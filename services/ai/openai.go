// Package aisvc implements core.TextGenerator against any OpenAI-compatible
// chat completion endpoint.
package aisvc

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
)

type openAIGenerator struct {
	client openai.Client
	model  string
}

var _ core.TextGenerator = (*openAIGenerator)(nil)

func NewOpenAIGenerator(conf *core.Config) *openAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(conf.AI.APIKey)}
	if conf.AI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(conf.AI.BaseURL))
	}
	return &openAIGenerator{
		client: openai.NewClient(opts...),
		model:  conf.AI.Model,
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	chat, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "requesting chat completion")
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return chat.Choices[0].Message.Content, nil
}
