package picture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// maxImageBytes caps generated image downloads
const maxImageBytes = 10 * 1024 * 1024

// downloadURL fetches url into outputPath, enforcing a size limit
func downloadURL(ctx context.Context, url, outputPath string, maxBytes int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.CopyN(file, resp.Body, maxBytes)
	if err != nil && err != io.EOF {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if written == maxBytes {
		// Probe for one more byte to detect an oversized image
		if _, err := resp.Body.Read(make([]byte, 1)); err != io.EOF {
			os.Remove(outputPath)
			return fmt.Errorf("image exceeds maximum size of %d bytes", maxBytes)
		}
	}

	return nil
}
