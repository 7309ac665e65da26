package batch

import (
	"fmt"
	"os"
	"strings"
)

// ReadBatchFile reads utterances from a file, one per line. Blank lines and
// lines starting with '#' are skipped.
func ReadBatchFile(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var utterances []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		utterances = append(utterances, line)
	}

	return utterances, nil
}
