package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/snonux/aispeak/internal/speech"
	"codeberg.org/snonux/aispeak/internal/stem"
)

// DefaultTargetDir is where relocated artifacts end up unless overridden
const DefaultTargetDir = "storage/documents"

var (
	// ErrSynthesisFailed means the speech provider reported a failure.
	// No relocation is attempted and the target directory is not created.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrArtifactMissing means the provider reported success but the
	// expected file is absent. Distinct from ErrSynthesisFailed because it
	// is a contract violation by the provider, not an acknowledged failure.
	ErrArtifactMissing = errors.New("file not found after ostensibly successful synthesis")
)

// Options configures a pipeline run. Directories are explicit here instead
// of being assumed from process state.
type Options struct {
	WorkingDir  string             // Where the provider writes the artifact (default ".")
	TargetDir   string             // Where the artifact is moved on success (default DefaultTargetDir)
	Format      string             // Artifact extension without dot (default "mp3")
	Synthesizer speech.Synthesizer // Required
	Deriver     *stem.Deriver      // Filename stem derivation (default stem.NewDeriver())
}

// Result describes a completed pipeline run
type Result struct {
	Stem      string // Derived filename stem
	WorkFile  string // Path the provider wrote to
	FinalPath string // Path after relocation
}

// Pipeline derives a filename from the input text, synthesizes speech for
// the full text and relocates the artifact into the target directory.
type Pipeline struct {
	opts Options
}

// New creates a pipeline, filling in defaults for unset options
func New(opts Options) (*Pipeline, error) {
	if opts.Synthesizer == nil {
		return nil, fmt.Errorf("a speech synthesizer is required")
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = "."
	}
	if opts.TargetDir == "" {
		opts.TargetDir = DefaultTargetDir
	}
	if opts.Format == "" {
		opts.Format = "mp3"
	}
	if opts.Deriver == nil {
		opts.Deriver = stem.NewDeriver()
	}
	return &Pipeline{opts: opts}, nil
}

// Run executes the full pipeline for text. The filename stem samples only
// the first words of the input; the provider speaks the entire text.
func (p *Pipeline) Run(ctx context.Context, text string) (*Result, error) {
	result := &Result{
		Stem: p.opts.Deriver.Derive(text),
	}

	filename := result.Stem + "." + p.opts.Format
	result.WorkFile = filepath.Join(p.opts.WorkingDir, filename)

	fmt.Printf("  Synthesizing speech (provider: %s)...\n", p.opts.Synthesizer.Name())
	if err := p.opts.Synthesizer.Synthesize(ctx, text, result.WorkFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSynthesisFailed, err)
	}

	if _, err := os.Stat(result.WorkFile); err != nil {
		return nil, fmt.Errorf("%w: expected %s", ErrArtifactMissing, result.WorkFile)
	}

	// Only now may the target directory come into existence; a failed run
	// must not leave one behind.
	if err := os.MkdirAll(p.opts.TargetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	result.FinalPath = filepath.Join(p.opts.TargetDir, filename)
	if err := moveFile(result.WorkFile, result.FinalPath); err != nil {
		return nil, fmt.Errorf("failed to relocate %s: %w", filename, err)
	}

	fmt.Printf("  Saved: %s\n", result.FinalPath)
	return result, nil
}

// moveFile renames src to dst, falling back to copy+remove when rename
// fails. The documents directory can sit on another filesystem (Termux
// storage mounts), where os.Rename returns EXDEV.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		os.Remove(dst)
		return err
	}
	if err := destination.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
