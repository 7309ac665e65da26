package stem

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// maxTokens is how many leading words of the input make it into the stem.
// The full text is still spoken; the stem only has to keep the documents
// directory scannable.
const maxTokens = 4

// Deriver turns free text into a filesystem-safe filename stem.
type Deriver struct {
	// Now supplies the timestamp for the fallback stem. Defaults to
	// time.Now so tests can pin it.
	Now func() time.Time
}

// NewDeriver creates a Deriver using the wall clock.
func NewDeriver() *Deriver {
	return &Deriver{Now: time.Now}
}

// Derive produces a stem from the first words of text: up to four
// whitespace-separated tokens, joined with underscores, punctuation
// stripped, lowercased. The result is never empty; input that normalizes
// to nothing (e.g. only punctuation) yields "speech_<unix-timestamp>".
func (d *Deriver) Derive(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) > maxTokens {
		tokens = tokens[:maxTokens]
	}

	joined := strings.Join(tokens, "_")

	var b strings.Builder
	for _, r := range joined {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
		// Everything else is punctuation and gets dropped.
	}

	result := b.String()
	if result == "" {
		now := time.Now
		if d.Now != nil {
			now = d.Now
		}
		return fmt.Sprintf("speech_%d", now().Unix())
	}
	return result
}
