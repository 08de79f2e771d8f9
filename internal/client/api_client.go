package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jengzang/solar-explorer-go/internal/models"
	"go.uber.org/zap"
)

// ErrUnexpectedStatus is returned for a non-2xx response from the projects API
var ErrUnexpectedStatus = errors.New("unexpected status from projects API")

// APIKeyHeader carries the projects API key
const APIKeyHeader = "x-api-key"

// APIClient loads projects from the remote projects API
type APIClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	log        *zap.Logger
}

// APIClientOptions configures an APIClient
type APIClientOptions struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration // 0 means no timeout
}

// NewAPIClient creates a projects API client
func NewAPIClient(opts APIClientOptions, log *zap.Logger) *APIClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		endpoint:   opts.Endpoint,
		apiKey:     opts.APIKey,
		log:        log,
	}
}

// GetProjects fetches and enriches every project. No retries are attempted.
func (c *APIClient) GetProjects(ctx context.Context) ([]models.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build projects request: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var records []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	projects := make([]models.Project, 0, len(records))
	for i, rec := range records {
		var r models.RawProject
		if err := json.Unmarshal(rec, &r); err != nil {
			c.log.Warn("skipping malformed project record", zap.Int("index", i), zap.Error(err))
			continue
		}
		projects = append(projects, Enrich(r, c.log.With(zap.String("project_id", string(r.ID)))))
	}

	c.log.Debug("fetched projects", zap.Int("count", len(projects)))
	return projects, nil
}
