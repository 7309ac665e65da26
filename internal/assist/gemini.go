package assist

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiResponder answers prompts via the Gemini API
type GeminiResponder struct {
	apiKey string
	model  string
}

// NewGeminiResponder creates a new Gemini answer provider
func NewGeminiResponder(config *Config) (Responder, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY)")
	}

	model := config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiResponder{apiKey: config.GeminiKey, model: model}, nil
}

// Respond sends the prompt to the Gemini model and returns its reply
func (r *GeminiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  r.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, r.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.7),
		})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("empty answer returned")
	}
	return answer, nil
}

// Name returns the responder name
func (r *GeminiResponder) Name() string {
	return "gemini"
}
