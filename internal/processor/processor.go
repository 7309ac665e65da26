package processor

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"codeberg.org/snonux/aispeak/internal/assist"
	"codeberg.org/snonux/aispeak/internal/batch"
	"codeberg.org/snonux/aispeak/internal/cli"
	"codeberg.org/snonux/aispeak/internal/history"
	"codeberg.org/snonux/aispeak/internal/pipeline"
	"codeberg.org/snonux/aispeak/internal/speech"
)

// Processor handles the main speech pipeline logic
type Processor struct {
	flags       *cli.Flags
	synthesizer speech.Synthesizer
	historyPath string
}

// NewProcessor creates a new processor, building the speech provider from
// flags and configuration
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	synthesizer, err := buildSynthesizer(flags)
	if err != nil {
		return nil, err
	}
	return NewProcessorWithSynthesizer(flags, synthesizer), nil
}

// NewProcessorWithSynthesizer creates a processor with an explicit speech
// provider, so tests can substitute a double
func NewProcessorWithSynthesizer(flags *cli.Flags, synthesizer speech.Synthesizer) *Processor {
	return &Processor{
		flags:       flags,
		synthesizer: synthesizer,
		historyPath: history.DefaultPath(),
	}
}

// buildSynthesizer creates the speech provider from flags and config file
func buildSynthesizer(flags *cli.Flags) (speech.Synthesizer, error) {
	config := &speech.Config{
		Provider:          flags.Provider,
		OutputFormat:      flags.Format,
		OpenAIKey:         cli.GetOpenAIKey(),
		OpenAIBaseURL:     cli.GetOpenAIBaseURL(),
		OpenAIModel:       flags.OpenAIModel,
		OpenAIVoice:       flags.OpenAIVoice,
		OpenAISpeed:       flags.OpenAISpeed,
		OpenAIInstruction: flags.OpenAIInstruction,
		ExternalCommand:   flags.ExternalCommand,
	}

	// Use config file values where flags were left at their defaults
	if config.OpenAIVoice == "" {
		if v := viper.GetString("speech.openai_voice"); v != "" {
			config.OpenAIVoice = v
		} else {
			config.OpenAIVoice = "alloy"
		}
	}
	if config.OpenAIInstruction == "" {
		config.OpenAIInstruction = viper.GetString("speech.openai_instruction")
	}
	if config.ExternalCommand == "" {
		config.ExternalCommand = viper.GetString("speech.external_command")
	}

	synthesizer, err := speech.NewSynthesizer(config)
	if err != nil {
		return nil, err
	}

	// An external command configured alongside the openai provider serves
	// as a fallback when the API call fails
	if config.Provider == "openai" && config.ExternalCommand != "" {
		fallback, err := speech.NewExternalSynthesizer(config)
		if err != nil {
			return nil, err
		}
		synthesizer = speech.NewSynthesizerWithFallback(synthesizer, fallback)
	}

	return synthesizer, nil
}

// ProcessText runs the full pipeline for a single input text
func (p *Processor) ProcessText(ctx context.Context, text string) error {
	spoken := text

	// With --ask the input is a question; the answer is what gets spoken
	if p.flags.Ask {
		answer, err := p.answer(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to answer input: %w", err)
		}
		fmt.Printf("Answer: %s\n", answer)
		spoken = answer
	}

	pipe, err := pipeline.New(pipeline.Options{
		WorkingDir:  p.flags.WorkDir,
		TargetDir:   p.flags.OutputDir,
		Format:      p.flags.Format,
		Synthesizer: p.synthesizer,
	})
	if err != nil {
		return err
	}

	result, err := pipe.Run(ctx, spoken)
	if err != nil {
		return err
	}

	p.recordHistory(spoken, result)
	return nil
}

// ProcessBatch speaks every utterance in the batch file. Per-line errors
// are reported and counted; the run continues. A circuit breaker keeps a
// failing remote provider from being called for every remaining line.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	utterances, err := batch.ReadBatchFile(p.flags.BatchFile)
	if err != nil {
		return err
	}

	original := p.synthesizer
	p.synthesizer = speech.NewBreakerSynthesizer(original)
	defer func() { p.synthesizer = original }()

	processedCount := 0
	errorCount := 0

	for i, text := range utterances {
		fmt.Printf("\nProcessing %d/%d: %s\n", i+1, len(utterances), text)

		if err := p.ProcessText(ctx, text); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", text, err)
			errorCount++
		} else {
			processedCount++
		}
	}

	fmt.Printf("\n=== Batch Processing Summary ===\n")
	fmt.Printf("Total utterances: %d\n", len(utterances))
	fmt.Printf("Processed: %d\n", processedCount)
	if errorCount > 0 {
		fmt.Printf("Errors: %d\n", errorCount)
	}
	fmt.Printf("================================\n")

	if errorCount > 0 {
		return fmt.Errorf("%d of %d utterances failed", errorCount, len(utterances))
	}
	return nil
}

// answer sends the input to the configured chat model
func (p *Processor) answer(ctx context.Context, text string) (string, error) {
	config := &assist.Config{
		Provider:      p.flags.AskProvider,
		OpenAIKey:     cli.GetOpenAIKey(),
		OpenAIBaseURL: cli.GetOpenAIBaseURL(),
		GeminiKey:     cli.GetGeminiKey(),
	}

	switch config.Provider {
	case "gemini":
		config.GeminiModel = p.flags.AskModel
	default:
		config.OpenAIModel = p.flags.AskModel
	}

	responder, err := assist.NewResponder(config)
	if err != nil {
		return "", err
	}

	fmt.Printf("Requesting answer (provider: %s)...\n", responder.Name())
	return responder.Respond(ctx, text)
}

// recordHistory appends the run to the history log. Failures here must not
// fail the pipeline.
func (p *Processor) recordHistory(text string, result *pipeline.Result) {
	if p.flags.NoHistory {
		return
	}

	store, err := history.Open(p.historyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to open history log: %v\n", err)
		return
	}
	defer store.Close()

	entry := history.Entry{
		Text:     text,
		Stem:     result.Stem,
		Path:     result.FinalPath,
		Provider: p.synthesizer.Name(),
	}
	if err := store.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record history: %v\n", err)
	}
}
