package speech

import (
	"context"
	"fmt"
)

// Synthesizer defines the interface for text-to-speech providers
type Synthesizer interface {
	// Synthesize generates speech for text and writes it to outputFile
	Synthesize(ctx context.Context, text string, outputFile string) error

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for speech providers
type Config struct {
	Provider     string // Provider name: "openai" or "external"
	OutputFormat string // Output format: "mp3" or "wav"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIBaseURL     string  // Optional API endpoint override (gateways)
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice       string  // "alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts

	// External command settings
	ExternalCommand string // Program invoked as: <command> <text> <outputFile>
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:     "openai",
		OutputFormat: "mp3",
		OpenAIModel:  "gpt-4o-mini-tts",
		OpenAIVoice:  "alloy",
		OpenAISpeed:  1.0,
	}
}

// NewSynthesizer creates the appropriate speech provider based on configuration
func NewSynthesizer(config *Config) (Synthesizer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAISynthesizer(config)

	case "external":
		return NewExternalSynthesizer(config)

	default:
		return nil, fmt.Errorf("unknown speech provider: %s", config.Provider)
	}
}

// SynthesizerWithFallback wraps a primary provider with a fallback option
type SynthesizerWithFallback struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewSynthesizerWithFallback creates a provider that falls back to secondary if primary fails
func NewSynthesizerWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &SynthesizerWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Synthesize tries the primary provider first, falls back to secondary on error
func (s *SynthesizerWithFallback) Synthesize(ctx context.Context, text string, outputFile string) error {
	err := s.primary.Synthesize(ctx, text, outputFile)
	if err != nil {
		fmt.Printf("Primary provider (%s) failed: %v. Falling back to %s\n",
			s.primary.Name(), err, s.fallback.Name())

		return s.fallback.Synthesize(ctx, text, outputFile)
	}
	return nil
}

// Name returns the provider name
func (s *SynthesizerWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", s.primary.Name(), s.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (s *SynthesizerWithFallback) IsAvailable() error {
	primaryErr := s.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := s.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
