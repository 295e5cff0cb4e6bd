// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backend talks to the external journal recommendation service.
// It sends one POST per submission and hands back the decoded reply; it
// does not interpret individual recommendations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/journal-recommender/internal/httputil"
	"github.com/pdiddy/journal-recommender/pkg/types"
)

// recommendPath is appended to the configured base URL.
const recommendPath = "/api/recommend"

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

// ServiceError reports a non-success HTTP status from the service.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("recommendation service returned HTTP %d: %s", e.StatusCode, e.Detail)
}

// Client calls the recommendation service.
type Client struct {
	HTTP       *http.Client
	BaseURL    string
	APIToken   string
	UserAgent  string
	MaxRetries int
}

// New builds a Client from cfg with an http.Client honoring cfg.Timeout.
func New(cfg types.BackendConfig) *Client {
	return &Client{
		HTTP:       &http.Client{Timeout: cfg.Timeout},
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		APIToken:   cfg.APIToken,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

// Recommend posts req to the service and decodes its reply. Non-2xx
// statuses return a *ServiceError; network and decoding failures are
// wrapped.
func (c *Client) Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+recommendPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.APIToken)
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, httpReq, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("recommendation service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}

	var out types.RecommendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("parsing recommendation response: %w", err)
	}
	return &out, nil
}

// errorDetail extracts the "detail" field of a JSON error body, as sent by
// the service's framework, or a generic message.
func errorDetail(r io.Reader) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return "backend request failed"
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
		return s
	}
	// Validation errors carry a structured detail; keep it verbatim.
	return string(payload.Detail)
}
