package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile creates a test file with content, creating parent
// directories as needed
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AudioData returns mock audio bytes (an MP3 frame header)
func AudioData() []byte {
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// MockSynthesizer implements speech.Synthesizer for tests. It writes
// AudioData to the requested output file unless configured to fail or to
// skip writing (simulating a provider that claims success without
// producing the file).
type MockSynthesizer struct {
	ProviderName string
	Err          error
	SkipWrite    bool
	Calls        []string
}

// Synthesize records the call and writes the mock artifact
func (m *MockSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	m.Calls = append(m.Calls, text)

	if m.Err != nil {
		return m.Err
	}
	if m.SkipWrite {
		return nil
	}

	if dir := filepath.Dir(outputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputFile, AudioData(), 0644)
}

// Name returns the configured provider name
func (m *MockSynthesizer) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable always succeeds
func (m *MockSynthesizer) IsAvailable() error {
	return nil
}
