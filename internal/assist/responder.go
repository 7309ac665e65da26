package assist

import (
	"context"
	"fmt"
)

// systemPrompt keeps spoken answers short enough for a single audio clip
const systemPrompt = "You are a helpful assistant. Keep your response concise, educational, and under 40 words. You may respond in the language of the user's question."

// Responder answers a free-text prompt with a short spoken-friendly reply
type Responder interface {
	// Respond returns the assistant's answer for the prompt
	Respond(ctx context.Context, prompt string) (string, error)

	// Name returns the responder name
	Name() string
}

// Config holds configuration for answer providers
type Config struct {
	Provider string // "openai" or "gemini"

	OpenAIKey     string
	OpenAIBaseURL string // Optional API endpoint override
	OpenAIModel   string // Default "gpt-4o-mini"

	GeminiKey   string
	GeminiModel string // Default "gemini-2.0-flash"
}

// NewResponder creates the configured answer provider
func NewResponder(config *Config) (Responder, error) {
	switch config.Provider {
	case "openai":
		return NewOpenAIResponder(config)
	case "gemini":
		return NewGeminiResponder(config)
	default:
		return nil, fmt.Errorf("unknown answer provider: %s", config.Provider)
	}
}
