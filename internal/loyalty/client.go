// Package loyalty talks to the mileage-calculation API and reduces its
// responses into per-flight award summaries.
package loyalty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"flightmiles/internal/lookup"
	"flightmiles/internal/models"
	"flightmiles/internal/ratelimit"
	"flightmiles/internal/session"
	"flightmiles/pkg/format"
)

// LimiterName identifies this upstream in the rate limiter.
const LimiterName = "loyalty"

// programsSessionKey is where the raw program catalog is cached per
// session. The catalog changes rarely and may be cached for a day.
const programsSessionKey = "programs"

// calculateFields limits the calculate response to mileage earnings.
const calculateFields = "id,flights(id,programs(code,statusTiers(code,mileageEarnings)))"

type APIError string

func (e APIError) Error() string {
	return string(e)
}

const (
	ErrStatus   APIError = "loyalty API returned an error status"
	ErrResponse APIError = "loyalty API response is malformed"
)

type Config struct {
	BaseURL string
	APIKey  string

	// Optional basic credentials for deployments that authenticate with
	// a username and password instead of an API key query parameter.
	Username string
	Password string

	Timeout time.Duration
}

// Client enriches flight results with frequent flyer estimates. The
// program catalog is cached in the session store between calls.
type Client struct {
	cfg     Config
	client  *http.Client
	store   session.Store
	limiter *ratelimit.UpstreamLimiter
}

func NewClient(cfg Config, store session.Store, limiter *ratelimit.UpstreamLimiter) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		store:   store,
		limiter: limiter,
	}
}

// Programs returns the frequent flyer program catalog, from the session
// cache when possible. Nothing is cached on failure.
func (c *Client) Programs(ctx context.Context, sessionID string) ([]models.Program, error) {
	if raw, ok := c.store.Get(ctx, sessionID, programsSessionKey); ok {
		var programs []models.Program
		if err := json.Unmarshal(raw, &programs); err == nil {
			return programs, nil
		}
	}

	body, err := c.send(ctx, http.MethodGet, "/programs", nil, nil)
	if err != nil {
		return nil, err
	}

	raw, err := decodePrograms(body)
	if err != nil {
		return nil, err
	}

	var programs []models.Program
	if err := json.Unmarshal(raw, &programs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}

	if err := c.store.Set(ctx, sessionID, programsSessionKey, raw); err != nil {
		return nil, err
	}

	return programs, nil
}

// decodePrograms extracts the raw program list from either the
// {Success, Value} envelope or the HAL _embedded shape, depending on
// which protocol version the deployment speaks.
func decodePrograms(body []byte) (json.RawMessage, error) {
	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Valid() {
		return envelope.Value, nil
	}

	var hal struct {
		Embedded struct {
			Programs json.RawMessage `json:"programs"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(body, &hal); err == nil && len(hal.Embedded.Programs) > 0 {
		return hal.Embedded.Programs, nil
	}

	return nil, ErrResponse
}

// Calculate submits the flight list to the calculation endpoint and
// reduces the response into mileage summaries. Flights the API earns
// nothing for are simply absent from the result.
func (c *Client) Calculate(ctx context.Context, sessionID, travelerID string, flights []models.Flight) ([]models.MileageSummary, error) {
	payload, err := json.Marshal(buildCalculateRequest(flights))
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"traveler": {travelerID},
		"fields":   {calculateFields},
	}

	body, err := c.send(ctx, http.MethodPost, "/calculate", query, payload)
	if err != nil {
		return nil, err
	}

	result, err := decodeCalculate(body)
	if err != nil {
		return nil, err
	}

	programs, err := c.Programs(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return reduceAwardMiles(result.Flights, programs), nil
}

func decodeCalculate(body []byte) (*calculateResponse, error) {
	var envelope models.Envelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Valid() {
		body = envelope.Value
	}

	var result calculateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponse, err)
	}
	if result.Flights == nil {
		return nil, ErrResponse
	}
	return &result, nil
}

// reduceAwardMiles flattens the calculate response into one summary per
// flight. More than one program may earn miles for a flight; only the
// first is shown. Flights missing programs, tiers, earnings or catalog
// entries are skipped, not errors.
func reduceAwardMiles(flights []calcFlightResult, programs []models.Program) []models.MileageSummary {
	summaries := make([]models.MileageSummary, 0, len(flights))

	for _, flight := range flights {
		if len(flight.Programs) == 0 {
			continue
		}

		earned := flight.Programs[0]
		if len(earned.StatusTiers) == 0 {
			continue
		}

		tier := earned.StatusTiers[0]
		if len(tier.MileageEarnings) == 0 {
			continue
		}

		awardEarning, ok := lookup.FirstByKey(tier.MileageEarnings, func(e calcEarning) int {
			return e.Code
		}, models.AwardMilesCode)
		if !ok {
			continue
		}

		program, ok := lookup.FirstByKey(programs, func(p models.Program) string {
			return p.Code
		}, earned.Code)
		if !ok || program.MileTypes == nil {
			continue
		}

		awardType, ok := lookup.FirstByKey(program.MileTypes, func(t models.MileType) int {
			return t.Code
		}, models.AwardMilesCode)
		if !ok {
			continue
		}

		summaries = append(summaries, models.MileageSummary{
			FlightID:        flight.ID,
			Program:         program.Name,
			AwardMilesValue: format.AwardMiles(awardEarning.Value),
			AwardMilesName:  awardType.Name,
		})
	}

	return summaries
}

// CreateTraveler registers an anonymous traveler with the loyalty API
// and returns its id. An empty body is enough when the traveler's
// country of residence is unknown.
func (c *Client) CreateTraveler(ctx context.Context) (string, error) {
	body, err := c.send(ctx, http.MethodPost, "/travelers", nil, []byte("{}"))
	if err != nil {
		return "", err
	}

	var traveler struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &traveler); err != nil || traveler.ID == "" {
		return "", ErrResponse
	}
	return traveler.ID, nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, query url.Values, payload []byte) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.cfg.APIKey != "" {
		query.Set("apiKey", c.cfg.APIKey)
	}

	target := c.cfg.BaseURL + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, err
	}

	if c.cfg.Username != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=1")
	req.Header.Set("Accept", "application/hal+json;q=1, application/json;q=0.8")
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("X-Api-Version", "v3.0")

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

	return io.ReadAll(resp.Body)
}
