package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExternalSynthesizer implements Synthesizer by shelling out to a
// user-configured command. The command is invoked with two positional
// arguments, the full text and the output filename, and is expected to do
// its own language detection. Exit code 0 means the file exists afterwards.
type ExternalSynthesizer struct {
	command string
}

// NewExternalSynthesizer creates a provider backed by an external command
func NewExternalSynthesizer(config *Config) (Synthesizer, error) {
	if config.ExternalCommand == "" {
		return nil, fmt.Errorf("external command is required (set --external-command or speech.external_command)")
	}

	return &ExternalSynthesizer{command: config.ExternalCommand}, nil
}

// Synthesize runs the external command with (text, outputFile)
func (s *ExternalSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	// Ensure output directory exists
	dir := filepath.Dir(outputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, s.command, text, outputFile)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", s.command, err, string(output))
	}

	return nil
}

// Name returns the provider name
func (s *ExternalSynthesizer) Name() string {
	return "external"
}

// IsAvailable checks if the configured command is in PATH
func (s *ExternalSynthesizer) IsAvailable() error {
	if s.command == "" {
		return fmt.Errorf("external command not configured")
	}
	if _, err := exec.LookPath(s.command); err != nil {
		return fmt.Errorf("%s is not installed or not in PATH: %w", s.command, err)
	}
	return nil
}
