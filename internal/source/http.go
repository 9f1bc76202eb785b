package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultFetchTimeout = 15 * time.Second

// HTTPSource fetches exports from web endpoints such as published
// spreadsheet scripts.
type HTTPSource struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPSource creates a source whose requests time out after timeout.
func NewHTTPSource(timeout time.Duration, logger *zap.Logger) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("http_source"),
	}
}

func (s *HTTPSource) Load(ctx context.Context, location string) (Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return Dataset{}, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return Dataset{}, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Dataset{}, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, location)
	}

	var ds Dataset
	if isWorkbook(location, resp.Header.Get("Content-Type")) {
		ds, err = DecodeWorkbook(resp.Body)
	} else {
		ds, err = DecodeJSON(resp.Body)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("decode %s: %w", location, err)
	}

	s.logger.Debug("fetched export",
		zap.String("location", location),
		zap.Int("sheets", len(ds.Sheets)),
		zap.Int("records", len(ds.Records())),
		zap.Duration("duration", time.Since(start)),
	)
	return ds, nil
}

func isWorkbook(location, contentType string) bool {
	if strings.Contains(contentType, "spreadsheetml") {
		return true
	}
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), extXLSX)
}
