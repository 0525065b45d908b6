// Package upstream talks to the flight-search API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"flightmiles/internal/models"
	"flightmiles/internal/ratelimit"
)

// LimiterName identifies this upstream in the rate limiter.
const LimiterName = "search"

type APIError string

func (e APIError) Error() string {
	return string(e)
}

const (
	ErrStatus   APIError = "upstream returned an error status"
	ErrEnvelope APIError = "upstream response envelope is malformed"
)

type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// SearchClient fetches search definitions and flight results from the
// search API. Responses arrive wrapped in the {Success, Value} envelope.
type SearchClient struct {
	cfg     Config
	client  *http.Client
	limiter *ratelimit.UpstreamLimiter
}

func NewSearchClient(cfg Config, limiter *ratelimit.UpstreamLimiter) *SearchClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &SearchClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// Searches returns the collection of sample search definitions.
func (c *SearchClient) Searches(ctx context.Context) ([]models.SearchDefinition, error) {
	value, err := c.get(ctx, "/api/searches", nil)
	if err != nil {
		return nil, err
	}

	var searches []models.SearchDefinition
	if err := json.Unmarshal(value, &searches); err != nil {
		return nil, fmt.Errorf("decode searches: %w", err)
	}
	return searches, nil
}

// Results returns flight results for one search. The id has been
// validated by the caller and is passed through verbatim.
func (c *SearchClient) Results(ctx context.Context, id string) (*models.SearchResponse, error) {
	value, err := c.get(ctx, "/api/searches", url.Values{"id": {id}})
	if err != nil {
		return nil, err
	}

	var response models.SearchResponse
	if err := json.Unmarshal(value, &response); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return &response, nil
}

func (c *SearchClient) get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	target := c.cfg.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept-Language", "en-US,en;q=1")
	req.Header.Set("Accept", "application/hal+json;q=1, application/json;q=0.8")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, LimiterName); err != nil {
			return nil, err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvelope, err)
	}
	if !envelope.Valid() {
		return nil, ErrEnvelope
	}

	return envelope.Value, nil
}
