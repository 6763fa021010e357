package images

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// MaxSize caps how much of a response body is read
const MaxSize = 10 * 1024 * 1024

// Fetcher downloads source images over HTTP. Bodies shorter than MinSize
// are rejected; zero accepts any size and leaves validation to the decoder.
type Fetcher struct {
	HTTPClient *http.Client
	MinSize    int
}

// NewFetcher creates a new image fetcher
func NewFetcher() *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsURL reports whether s looks like an http(s) URL rather than a file path
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch downloads the image at url and returns its raw bytes
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image URL returned status %d", resp.StatusCode)
	}

	// Read one byte past the limit to detect oversized bodies
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	if len(data) > MaxSize {
		return nil, fmt.Errorf("image larger than %d bytes", MaxSize)
	}

	if f.MinSize > 0 && len(data) < f.MinSize {
		return nil, fmt.Errorf("image too small (likely placeholder), size: %d bytes", len(data))
	}

	slog.Debug("Downloaded image", "url", url, "bytes", len(data))

	return data, nil
}
