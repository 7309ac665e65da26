package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIResponder answers prompts via the OpenAI chat completions API
type OpenAIResponder struct {
	client *openai.Client
	model  string
}

// NewOpenAIResponder creates a new OpenAI answer provider
func NewOpenAIResponder(config *Config) (Responder, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	var client *openai.Client
	if config.OpenAIBaseURL != "" {
		clientConfig := openai.DefaultConfig(config.OpenAIKey)
		clientConfig.BaseURL = config.OpenAIBaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(config.OpenAIKey)
	}

	model := config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIResponder{client: client, model: model}, nil
}

// Respond sends the prompt to the chat model and returns its reply
func (r *OpenAIResponder) Respond(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   50,
		Temperature: 0.7,
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no answer returned")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty answer returned")
	}
	return answer, nil
}

// Name returns the responder name
func (r *OpenAIResponder) Name() string {
	return "openai"
}
