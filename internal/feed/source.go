package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Source fetches one raw feed document per call.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPSource fetches the feed with a GET request.
type HTTPSource struct {
	url          string
	client       *http.Client
	maxBodyBytes int64
}

// NewHTTPSource creates a feed source for url. Bodies larger than
// maxBodySizeMB are rejected rather than truncated.
func NewHTTPSource(url string, timeout time.Duration, maxBodySizeMB int) *HTTPSource {
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 10
	}
	return &HTTPSource{
		url:          url,
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: int64(maxBodySizeMB) * 1024 * 1024,
	}
}

// Fetch downloads the feed document. Any transport failure or non-2xx
// status is returned as an error.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	// +1 to detect oversized documents
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, fmt.Errorf("feed body exceeds %d bytes", s.maxBodyBytes)
	}

	slog.Debug("[Feed] Fetched document", "url", s.url, "bytes", len(body))
	return body, nil
}
