package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBreakerSynthesizerPassesThrough(t *testing.T) {
	inner := &mockSynthesizer{name: "openai"}
	s := NewBreakerSynthesizer(inner)

	if err := s.Synthesize(context.Background(), "hello", "out.mp3"); err != nil {
		t.Errorf("Synthesize() unexpected error: %v", err)
	}
	if inner.generateCalls != 1 {
		t.Errorf("Expected 1 inner call, got %d", inner.generateCalls)
	}
	if s.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", s.Name())
	}
}

func TestBreakerSynthesizerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &mockSynthesizer{name: "openai", generateErr: errors.New("boom")}
	s := NewBreakerSynthesizer(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Synthesize(ctx, "hello", "out.mp3"); err == nil {
			t.Fatalf("Synthesize() call %d expected error", i+1)
		}
	}
	if inner.generateCalls != 3 {
		t.Fatalf("Expected 3 inner calls before breaker opens, got %d", inner.generateCalls)
	}

	// Breaker is open now; the provider must not be called again
	err := s.Synthesize(ctx, "hello", "out.mp3")
	if err == nil {
		t.Fatal("Synthesize() expected error while breaker open")
	}
	if !strings.Contains(err.Error(), "suspended after repeated failures") {
		t.Errorf("Synthesize() error = %v, want suspension message", err)
	}
	if inner.generateCalls != 3 {
		t.Errorf("Expected inner provider untouched while open, got %d calls", inner.generateCalls)
	}

	if availErr := s.IsAvailable(); availErr == nil {
		t.Error("IsAvailable() expected error while breaker open")
	}
}
