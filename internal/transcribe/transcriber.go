package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Transcriber converts stored audio files back to text via the
// transcriptions API
type Transcriber struct {
	client   *openai.Client
	model    string
	audioDir string
}

// Config holds transcription settings
type Config struct {
	APIKey   string
	BaseURL  string // Optional API endpoint override
	Model    string // Default "whisper-1"
	AudioDir string // Where audio files are looked up (default pipeline target dir)
}

// New creates a new Transcriber
func New(config *Config) (*Transcriber, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	var client *openai.Client
	if config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		clientConfig.BaseURL = config.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(config.APIKey)
	}

	model := config.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &Transcriber{
		client:   client,
		model:    model,
		audioDir: config.AudioDir,
	}, nil
}

// ResolvePath locates filename inside the audio directory. Absolute paths
// and paths that already point at an existing file are taken as-is.
func (t *Transcriber) ResolvePath(filename string) (string, error) {
	candidate := filename
	if !filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			candidate = filepath.Join(t.audioDir, filename)
		}
	}

	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("audio file not found at %s (expected %q in the %s directory)",
			candidate, filepath.Base(filename), t.audioDir)
	}
	return candidate, nil
}

// Transcribe uploads the audio file and returns the transcribed text
func (t *Transcriber) Transcribe(ctx context.Context, filename string) (string, error) {
	path, err := t.ResolvePath(filename)
	if err != nil {
		return "", err
	}

	fmt.Printf("Transcribing %s (model: %s)...\n", path, t.model)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: path,
	})
	if err != nil {
		errStr := err.Error()
		switch {
		case strings.Contains(errStr, "Authentication"):
			return "", fmt.Errorf("transcription failed: %w\nHint: check your API key", err)
		case strings.Contains(errStr, "Unsupported file type"):
			return "", fmt.Errorf("transcription failed: %w\nHint: supported formats include mp3, wav and m4a", err)
		}
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("transcription returned no text")
	}
	return text, nil
}
