package picture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const defaultNegativePrompt = "blurry, worst quality, noise, disfigured, watermark, ugly"

// Config holds image generation settings
type Config struct {
	APIKey  string
	BaseURL string // Optional API endpoint override

	Model   string // "dall-e-2" or "dall-e-3"
	Size    string // e.g. "1024x1024"
	Quality string // "standard" or "hd" (dall-e-3 only)
	Style   string // "natural" or "vivid" (dall-e-3 only)

	RefinerModel string // Chat model used to refine/translate prompts
	OutputDir    string // Where generated images are saved

	Now func() time.Time // Timestamp source for output filenames
}

// DefaultConfig returns default image generation configuration
func DefaultConfig() *Config {
	return &Config{
		Model:        "dall-e-3",
		Size:         "1024x1024",
		Quality:      "standard",
		Style:        "natural",
		RefinerModel: openai.GPT4oMini,
		OutputDir:    "storage/pictures",
		Now:          time.Now,
	}
}

// refinedPrompt is the JSON shape the refiner model is asked to produce
type refinedPrompt struct {
	PrimaryPrompt  string `json:"primary_prompt"`
	NegativePrompt string `json:"negative_prompt"`
}

// Generator turns a free-text prompt into a saved PNG
type Generator struct {
	client *openai.Client
	config *Config
}

// NewGenerator creates an image generator
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for image generation")
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.RefinerModel == "" {
		config.RefinerModel = openai.GPT4oMini
	}

	var client *openai.Client
	if config.BaseURL != "" {
		clientConfig := openai.DefaultConfig(config.APIKey)
		clientConfig.BaseURL = config.BaseURL
		client = openai.NewClientWithConfig(clientConfig)
	} else {
		client = openai.NewClient(config.APIKey)
	}

	return &Generator{client: client, config: config}, nil
}

// Generate refines the prompt, generates an image and saves it. Returns the
// path of the saved file.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	refined := g.refinePrompt(ctx, prompt)

	english, err := g.translatePrompt(ctx, refined.PrimaryPrompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: translation failed: %v. Using original prompt.\n", err)
		english = refined.PrimaryPrompt
	}

	fullPrompt := buildImagePrompt(english, refined.NegativePrompt)

	fmt.Printf("Generating image (model: %s, size: %s)...\n", g.config.Model, g.config.Size)

	req := openai.ImageRequest{
		Prompt:         fullPrompt,
		Model:          g.config.Model,
		N:              1,
		Size:           g.config.Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}
	if g.config.Model == "dall-e-3" {
		req.Quality = g.config.Quality
		req.Style = g.config.Style
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no image data")
	}

	if err := os.MkdirAll(g.config.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := fmt.Sprintf("%s/image_%d.png", g.config.OutputDir, g.config.Now().Unix())
	if err := downloadURL(ctx, resp.Data[0].URL, outputPath, maxImageBytes); err != nil {
		return "", fmt.Errorf("failed to download generated image: %w", err)
	}

	return outputPath, nil
}

// refinePrompt asks a chat model to expand the prompt into a detailed
// primary prompt plus negative keywords. Any failure falls back to the
// original prompt with stock negatives.
func (g *Generator) refinePrompt(ctx context.Context, prompt string) refinedPrompt {
	fallback := refinedPrompt{
		PrimaryPrompt:  prompt,
		NegativePrompt: defaultNegativePrompt,
	}

	systemInstruction := "You are an expert AI image generation prompt engineer. Your response MUST be a JSON object " +
		"with exactly two keys: 'primary_prompt' (the highly detailed prompt) and 'negative_prompt' (a comma-separated string of negative keywords). " +
		"Generate a primary prompt that includes: 1. Subject/Scene details. 2. Lighting/Mood. 3. Artistic Style/Medium. 4. Camera/Aesthetic terms."

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.RefinerModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Refine this into a perfect image prompt: %s", prompt)},
		},
		Temperature: 0.8,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: prompt refinement failed: %v. Using original prompt.\n", err)
		return fallback
	}
	if len(resp.Choices) == 0 {
		return fallback
	}

	var refined refinedPrompt
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &refined); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not parse refined prompt: %v. Using original prompt.\n", err)
		return fallback
	}

	if refined.PrimaryPrompt == "" {
		refined.PrimaryPrompt = prompt
	}
	if refined.NegativePrompt == "" {
		refined.NegativePrompt = defaultNegativePrompt
	}

	fmt.Printf("Refined prompt: %s\n", refined.PrimaryPrompt)
	return refined
}

// translatePrompt translates the prompt to English. Prompts already in
// English come back unchanged.
func (g *Generator) translatePrompt(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.RefinerModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate the following image prompt to English. If it is already English, return it unchanged. Respond with only the prompt, nothing else:\n%s", prompt),
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("empty translation returned")
	}
	return translated, nil
}

// buildImagePrompt prefixes the negative keywords the way the image models
// accept them in a single prompt string
func buildImagePrompt(prompt, negative string) string {
	if negative == "" {
		return prompt
	}
	return fmt.Sprintf("negative things NOT to generate: %s. %s", negative, prompt)
}
