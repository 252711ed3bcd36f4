package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/soundprediction/episodegrid/pkg/graphstore"
	"github.com/soundprediction/episodegrid/pkg/types"
)

// MaxDocumentSize bounds the body read from a remote dataset.
const MaxDocumentSize = 64 << 20

// HTTPSource fetches a dataset document with a single GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
	Repair bool
	// MaxBytes caps the body size; zero means MaxDocumentSize. Larger
	// bodies are rejected rather than cut short.
	MaxBytes int64
}

// NewHTTPSource creates an HTTPSource. A zero timeout means 30 seconds.
func NewHTTPSource(rawURL string, timeout time.Duration, repair bool) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		URL:    rawURL,
		Client: &http.Client{Timeout: timeout},
		Repair: repair,
	}
}

// Fetch performs the request and decodes the body.
func (s *HTTPSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch dataset: unexpected status %s", resp.Status)
	}

	limit := s.MaxBytes
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &graphstore.MalformedDatasetError{
			Index:  -1,
			Reason: fmt.Sprintf("document too large: exceeds %d bytes", limit),
		}
	}

	path := s.URL
	if u, err := url.Parse(s.URL); err == nil {
		path = u.Path
	}
	return Parse(data, formatFor(path, resp.Header.Get("Content-Type")), s.Repair)
}

func (s *HTTPSource) String() string {
	if u, err := url.Parse(s.URL); err == nil {
		u.User = nil
		return u.String()
	}
	return s.URL
}
