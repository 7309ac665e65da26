package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey, baseURL string) *Lister {
	var client *openai.Client
	if baseURL != "" {
		config := openai.DefaultConfig(apiKey)
		config.BaseURL = baseURL
		client = openai.NewClientWithConfig(config)
	} else {
		client = openai.NewClient(apiKey)
	}

	return &Lister{
		apiKey: apiKey,
		client: client,
	}
}

// ListAvailableModels lists all available OpenAI models categorized by type
func (l *Lister) ListAvailableModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .aispeak.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	// Categorize models
	ttsModels := []string{}
	transcriptionModels := []string{}
	imageModels := []string{}
	chatModels := []string{}

	for _, model := range models.Models {
		modelID := model.ID
		if strings.Contains(modelID, "tts") || strings.Contains(modelID, "audio") {
			ttsModels = append(ttsModels, modelID)
		} else if strings.Contains(modelID, "whisper") || strings.Contains(modelID, "transcribe") {
			transcriptionModels = append(transcriptionModels, modelID)
		} else if strings.Contains(modelID, "dall-e") || strings.Contains(modelID, "image") {
			imageModels = append(imageModels, modelID)
		} else if strings.Contains(modelID, "gpt") || strings.Contains(modelID, "chat") {
			chatModels = append(chatModels, modelID)
		}
	}

	sort.Strings(ttsModels)
	sort.Strings(transcriptionModels)
	sort.Strings(imageModels)
	sort.Strings(chatModels)

	fmt.Println("Available OpenAI Models:")
	printCategory("Text-to-Speech (TTS) Models:", ttsModels)
	printCategory("Transcription Models:", transcriptionModels)
	printCategory("Image Generation Models:", imageModels)

	fmt.Println("\nChat Models (for --ask answers and prompt refinement):")
	if len(chatModels) > 10 {
		// Show only relevant models
		relevantModels := []string{}
		for _, model := range chatModels {
			if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
				relevantModels = append(relevantModels, model)
			}
		}
		for _, model := range relevantModels {
			fmt.Printf("  %s\n", model)
		}
		fmt.Printf("  ... and %d more models\n", len(chatModels)-len(relevantModels))
	} else {
		for _, model := range chatModels {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}

func printCategory(title string, models []string) {
	fmt.Printf("\n%s\n", title)
	if len(models) == 0 {
		fmt.Println("  No models found")
		return
	}
	for _, model := range models {
		fmt.Printf("  %s\n", model)
	}
}
