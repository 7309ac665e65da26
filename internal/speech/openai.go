package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAISynthesizer implements Synthesizer for the OpenAI TTS API
type OpenAISynthesizer struct {
	client *openai.Client
	config *Config
}

// NewOpenAISynthesizer creates a new OpenAI TTS provider
func NewOpenAISynthesizer(config *Config) (Synthesizer, error) {
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

	return &OpenAISynthesizer{
		client: client,
		config: config,
	}, nil
}

// Synthesize generates speech using the OpenAI TTS API. The model handles
// language detection itself; the full input text is spoken as given.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	fmt.Printf("OpenAI TTS: Using model '%s' with voice '%s' at speed %.2f\n",
		s.config.OpenAIModel, s.config.OpenAIVoice, s.config.OpenAISpeed)

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(s.config.OpenAIModel),
		Input: text,
		Voice: openai.SpeechVoice(s.config.OpenAIVoice),
		Speed: s.config.OpenAISpeed,
	}

	// Voice instructions are only honored by the gpt-4o-mini-tts models
	if s.config.OpenAIInstruction != "" && strings.HasPrefix(s.config.OpenAIModel, "gpt-4o-mini") {
		req.Instructions = s.config.OpenAIInstruction
	}

	// Determine response format based on output file extension
	ext := strings.ToLower(filepath.Ext(outputFile))
	switch ext {
	case ".mp3":
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	case ".wav":
		req.ResponseFormat = openai.SpeechResponseFormatWav
	case ".opus":
		req.ResponseFormat = openai.SpeechResponseFormatOpus
	case ".aac":
		req.ResponseFormat = openai.SpeechResponseFormatAac
	case ".flac":
		req.ResponseFormat = openai.SpeechResponseFormatFlac
	default:
		req.ResponseFormat = openai.SpeechResponseFormatMp3
		if !strings.HasSuffix(outputFile, ".mp3") {
			outputFile += ".mp3"
		}
	}

	response, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") && strings.HasPrefix(s.config.OpenAIModel, "gpt-4o-mini") {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, s.config.OpenAIModel)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	// Ensure output directory exists
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return nil
}

// Name returns the provider name
func (s *OpenAISynthesizer) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (s *OpenAISynthesizer) IsAvailable() error {
	if s.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test API call would use credits; having a key is good enough here
	return nil
}
