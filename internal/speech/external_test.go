package speech

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestNewExternalSynthesizer(t *testing.T) {
	_, err := NewExternalSynthesizer(&Config{Provider: "external"})
	if err == nil {
		t.Error("NewExternalSynthesizer() expected error without command")
	}

	s, err := NewExternalSynthesizer(&Config{Provider: "external", ExternalCommand: "gtts-cli"})
	if err != nil {
		t.Fatalf("NewExternalSynthesizer() unexpected error: %v", err)
	}
	if s.Name() != "external" {
		t.Errorf("Name() = %q, want external", s.Name())
	}
}

func TestExternalSynthesizerIsAvailable(t *testing.T) {
	s := &ExternalSynthesizer{command: "definitely-not-installed-anywhere"}
	if err := s.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error for missing command")
	}
}

func TestExternalSynthesizerEmptyText(t *testing.T) {
	s := &ExternalSynthesizer{command: "true"}
	if err := s.Synthesize(context.Background(), "   ", "out.mp3"); err == nil {
		t.Error("Synthesize() expected error for empty text")
	}
}

func TestExternalSynthesizerRunsCommand(t *testing.T) {
	// "sh" stands in for the real synthesis command; the contract is just
	// (text, filename) as two positional arguments and exit code 0.
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-tts")
	content := "#!/bin/sh\nprintf audio > \"$2\"\n"
	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write fake command: %v", err)
	}

	s := &ExternalSynthesizer{command: script}
	outputFile := filepath.Join(dir, "out", "hello.mp3")

	if err := s.Synthesize(context.Background(), "hello world", outputFile); err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != "audio" {
		t.Errorf("output file content = %q, want %q", data, "audio")
	}
}

func TestExternalSynthesizerCommandFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	s := &ExternalSynthesizer{command: "false"}
	err := s.Synthesize(context.Background(), "hello", filepath.Join(t.TempDir(), "out.mp3"))
	if err == nil {
		t.Error("Synthesize() expected error for failing command")
	}
}
