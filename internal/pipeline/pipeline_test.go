package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/snonux/aispeak/internal/stem"
)

// fakeSynthesizer implements speech.Synthesizer for pipeline tests
type fakeSynthesizer struct {
	err       error
	writeFile bool
	lastText  string
	lastFile  string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	f.lastText = text
	f.lastFile = outputFile
	if f.err != nil {
		return f.err
	}
	if f.writeFile {
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return err
		}
		return os.WriteFile(outputFile, []byte("fake audio"), 0644)
	}
	return nil
}

func (f *fakeSynthesizer) Name() string       { return "fake" }
func (f *fakeSynthesizer) IsAvailable() error { return nil }

func TestNewRequiresSynthesizer(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() expected error without synthesizer")
	}
}

func TestRunSuccess(t *testing.T) {
	workDir := t.TempDir()
	targetDir := filepath.Join(workDir, "storage", "documents")

	synth := &fakeSynthesizer{writeFile: true}
	p, err := New(Options{
		WorkingDir:  workDir,
		TargetDir:   targetDir,
		Synthesizer: synth,
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	result, err := p.Run(context.Background(), "Hello, World! How are you?")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if result.Stem != "hello_world_how_are" {
		t.Errorf("Stem = %q, want hello_world_how_are", result.Stem)
	}

	// The provider must receive the FULL text, not the sampled stem
	if synth.lastText != "Hello, World! How are you?" {
		t.Errorf("Provider received %q, want the full input text", synth.lastText)
	}

	wantFinal := filepath.Join(targetDir, "hello_world_how_are.mp3")
	if result.FinalPath != wantFinal {
		t.Errorf("FinalPath = %q, want %q", result.FinalPath, wantFinal)
	}

	// Moved, not copied: final exists, work file is gone
	if _, err := os.Stat(result.FinalPath); err != nil {
		t.Errorf("relocated file missing: %v", err)
	}
	if _, err := os.Stat(result.WorkFile); !os.IsNotExist(err) {
		t.Errorf("work file still present after relocation: %v", err)
	}
}

func TestRunSynthesisFailure(t *testing.T) {
	workDir := t.TempDir()
	targetDir := filepath.Join(workDir, "storage", "documents")

	synth := &fakeSynthesizer{err: errors.New("API exploded")}
	p, err := New(Options{
		WorkingDir:  workDir,
		TargetDir:   targetDir,
		Synthesizer: synth,
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	_, err = p.Run(context.Background(), "hello")
	if !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("Run() error = %v, want ErrSynthesisFailed", err)
	}

	if _, statErr := os.Stat(targetDir); !os.IsNotExist(statErr) {
		t.Error("target directory created despite synthesis failure")
	}
}

func TestRunArtifactMissing(t *testing.T) {
	workDir := t.TempDir()
	targetDir := filepath.Join(workDir, "storage", "documents")

	// Provider reports success but never writes the file
	synth := &fakeSynthesizer{writeFile: false}
	p, err := New(Options{
		WorkingDir:  workDir,
		TargetDir:   targetDir,
		Synthesizer: synth,
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	_, err = p.Run(context.Background(), "hello")
	if !errors.Is(err, ErrArtifactMissing) {
		t.Errorf("Run() error = %v, want ErrArtifactMissing", err)
	}
	if errors.Is(err, ErrSynthesisFailed) {
		t.Error("ErrArtifactMissing must be distinct from ErrSynthesisFailed")
	}

	if _, statErr := os.Stat(targetDir); !os.IsNotExist(statErr) {
		t.Error("target directory created despite missing artifact")
	}
}

func TestRunFallbackStem(t *testing.T) {
	workDir := t.TempDir()
	fixed := time.Unix(1700000000, 0)

	synth := &fakeSynthesizer{writeFile: true}
	p, err := New(Options{
		WorkingDir:  workDir,
		TargetDir:   filepath.Join(workDir, "docs"),
		Synthesizer: synth,
		Deriver:     &stem.Deriver{Now: func() time.Time { return fixed }},
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	result, err := p.Run(context.Background(), "???")
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if result.Stem != "speech_1700000000" {
		t.Errorf("Stem = %q, want speech_1700000000", result.Stem)
	}
}

func TestRunIdempotentTargetDir(t *testing.T) {
	workDir := t.TempDir()
	targetDir := filepath.Join(workDir, "docs")

	// Pre-existing target directory must not be an error
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		t.Fatal(err)
	}

	synth := &fakeSynthesizer{writeFile: true}
	p, err := New(Options{
		WorkingDir:  workDir,
		TargetDir:   targetDir,
		Synthesizer: synth,
	})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	if _, err := p.Run(context.Background(), "again and again and again"); err != nil {
		t.Errorf("Run() unexpected error with existing target dir: %v", err)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	dst := filepath.Join(dir, "dst.mp3")

	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := moveFile(src, dst); err != nil {
		t.Fatalf("moveFile() unexpected error: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if string(data) != "data" {
		t.Errorf("destination content = %q, want %q", data, "data")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}
}
