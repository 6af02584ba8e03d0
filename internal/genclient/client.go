// Package genclient calls the exercise-generation endpoint and normalizes
// its response into an exercise.Set.
package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langcoach/internal/exercise"
)

// DefaultEndpoint is the local generation server started by `langcoach serve`.
const DefaultEndpoint = "http://localhost:8080/api/exercises"

// ErrGenerationFailed is the single failure surfaced to users. The cause is
// logged, never shown.
var ErrGenerationFailed = errors.New("failed to generate exercises")

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client posts generation requests to an endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      logrus.FieldLogger

	// timeout is set by WithTimeout and applied to a copy of http once
	// all options have run.
	timeout *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. hc is never
// modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithLogger sets the logger used for failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 2 * time.Minute},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.http
		hc.Timeout = *c.timeout
		c.http = &hc
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Generate submits req and returns the normalized exercise set. Every
// failure, whether transport, status or decoding, is reported as
// ErrGenerationFailed.
func (c *Client) Generate(ctx context.Context, req exercise.Request) (exercise.Set, error) {
	log := c.log.WithFields(logrus.Fields{
		"endpoint": c.endpoint,
		"provider": req.Provider,
	})

	set, err := c.generate(ctx, req)
	if err != nil {
		log.WithError(err).Error("exercise generation failed")
		return exercise.Set{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	log.WithField("exercises", len(set.Exercises)).Debug("exercises generated")
	return set, nil
}

func (c *Client) generate(ctx context.Context, req exercise.Request) (exercise.Set, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return exercise.Set{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return exercise.Set{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return exercise.Set{}, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return exercise.Set{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return exercise.Set{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	set, err := exercise.Normalize(raw)
	if err != nil {
		return exercise.Set{}, fmt.Errorf("decode response: %w", err)
	}
	return set, nil
}
