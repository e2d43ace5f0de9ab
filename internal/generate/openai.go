package generate

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openaiCompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator builds a Generator backed by the OpenAI chat API.
func NewOpenAIGenerator(apiKey, model string) Generator {
	return &llmGenerator{c: &openaiCompleter{
		client: openai.NewClient(apiKey),
		model:  model,
	}}
}

func (c *openaiCompleter) name() string { return "openai" }

func (c *openaiCompleter) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
