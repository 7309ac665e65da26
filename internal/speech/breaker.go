package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSynthesizer wraps a remote provider with a circuit breaker so that
// batch runs stop hammering an API that keeps failing. It never retries a
// request; it only refuses new ones while the breaker is open.
type BreakerSynthesizer struct {
	inner   Synthesizer
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerSynthesizer wraps inner with a circuit breaker that opens after
// three consecutive failures and probes again after 30 seconds.
func NewBreakerSynthesizer(inner Synthesizer) Synthesizer {
	settings := gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fmt.Printf("Speech provider %s circuit breaker: %s -> %s\n", name, from, to)
		},
	}

	return &BreakerSynthesizer{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize delegates to the wrapped provider through the breaker
func (s *BreakerSynthesizer) Synthesize(ctx context.Context, text string, outputFile string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.inner.Synthesize(ctx, text, outputFile)
	})
	if err == gobreaker.ErrOpenState {
		return fmt.Errorf("speech provider %s suspended after repeated failures", s.inner.Name())
	}
	return err
}

// Name returns the wrapped provider name
func (s *BreakerSynthesizer) Name() string {
	return s.inner.Name()
}

// IsAvailable checks the wrapped provider
func (s *BreakerSynthesizer) IsAvailable() error {
	if s.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("circuit breaker open for %s", s.inner.Name())
	}
	return s.inner.IsAvailable()
}
