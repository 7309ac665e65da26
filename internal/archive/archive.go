package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Archiver moves a documents directory aside under a timestamped name so
// the pipeline starts over with an empty one. The clock is injectable so
// tests can pin the timestamp.
type Archiver struct {
	Now func() time.Time
}

// NewArchiver creates an Archiver using the wall clock.
func NewArchiver() *Archiver {
	return &Archiver{Now: time.Now}
}

// Archive renames documentsDir to <parent>/archive/documents-<timestamp>
// and returns the new path. The directory must exist. An already occupied
// timestamp slot gets a numeric suffix.
func (a *Archiver) Archive(documentsDir string) (string, error) {
	if _, err := os.Stat(documentsDir); err != nil {
		return "", fmt.Errorf("cannot archive %s: %w", documentsDir, err)
	}

	archiveDir := filepath.Join(filepath.Dir(documentsDir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	stamp := now().Format("20060102-150405")

	dest := filepath.Join(archiveDir, "documents-"+stamp)
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(archiveDir, fmt.Sprintf("documents-%s-%d", stamp, n))
	}

	if err := os.Rename(documentsDir, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", documentsDir, err)
	}

	return dest, nil
}
