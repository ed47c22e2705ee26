// Package planner is the HTTP client for the external route/HOS planning
// service. It submits trip requests and returns the computed plan; the
// planning algorithm itself lives entirely upstream.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/routelogpro/routelogpro/internal/resilience"
	"github.com/routelogpro/routelogpro/internal/session"
	"github.com/routelogpro/routelogpro/internal/trip"
)

const planPath = "/api/trips/plan"

// Config holds configuration for the planner client.
type Config struct {
	// BaseURL is the planning service root, without a trailing slash.
	BaseURL string

	// Credentials supplies the bearer token attached to each call.
	Credentials session.Source

	// HTTPClient is the resilient transport. A default one is created
	// when nil.
	HTTPClient *resilience.Client

	// Metrics records per-call instruments. Optional.
	Metrics *Metrics

	Logger zerolog.Logger
}

// Client calls the planning service. It implements trip.Planner.
type Client struct {
	baseURL     string
	credentials session.Source
	httpClient  *resilience.Client
	metrics     *Metrics
	logger      zerolog.Logger
}

// New creates a planner client.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig("planner"))
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		credentials: cfg.Credentials,
		httpClient:  httpClient,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
}

// PlanTrip submits a trip request and returns the computed plan.
//
// Failure mapping: transport errors, an open circuit, and 5xx responses
// become trip.ErrPlannerUnavailable (retryable by the caller); 401 and 403
// become trip.ErrCredentialRejected and are never retried here; 400 and
// 422 become trip.ErrInvalidTripRequest.
func (c *Client) PlanTrip(ctx context.Context, req trip.PlanRequest) (result *trip.PlanResult, err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordRequest(ctx, "plan_trip", time.Since(start), err)
	}()

	token, err := c.credentials.BearerToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", trip.ErrCredentialRejected, err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding plan request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+planPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building plan request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.Warn().Msg("planner circuit open, failing fast")
		}
		return nil, fmt.Errorf("%w: %w", trip.ErrPlannerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var plan trip.PlanResult
		if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
			return nil, fmt.Errorf("%w: decoding plan response: %w", trip.ErrPlannerUnavailable, err)
		}
		return &plan, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, trip.ErrCredentialRejected

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", trip.ErrInvalidTripRequest, upstreamDetail(resp))

	default:
		c.logger.Warn().Int("status", resp.StatusCode).Msg("unexpected planner response")
		return nil, fmt.Errorf("%w: unexpected status %d", trip.ErrPlannerUnavailable, resp.StatusCode)
	}
}

// upstreamDetail extracts the error detail the planning service returns
// on rejected requests, falling back to the HTTP status text.
func upstreamDetail(resp *http.Response) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return http.StatusText(resp.StatusCode)
}
