package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrMissingInput is returned when the header text cannot be obtained.
var ErrMissingInput = errors.New("missing input")

// RegistryURL is the canonical location of the core-profile header.
const RegistryURL = "https://registry.khronos.org/OpenGL/api/GL/glcorearb.h"

// Client fetches header text from local files or over HTTP.
// Remote fetches are retried on transport errors, 429 and 5xx responses.
type Client struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// NewClient returns a Client with a bounded timeout and three attempts per fetch.
func NewClient() *Client {
	transport := &http.Transport{
		MaxIdleConns:        2,
		IdleConnTimeout:     30 * time.Second,
		MaxIdleConnsPerHost: 2,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   time.Minute,
			Transport: transport,
		},
		maxRetries: 3,
		backoff:    2 * time.Second,
	}
}

// Load returns the text at location, which is either a file path or an http(s) URL.
// Any failure, including an empty document, is reported as ErrMissingInput.
func (c *Client) Load(ctx context.Context, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: no source given", ErrMissingInput)
	}

	var (
		data []byte
		err  error
	)
	if isURL(location) {
		data, err = c.fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMissingInput, location, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingInput, location)
	}

	return string(data), nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, retry, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}

		lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
		if !retry || attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return nil, lastErr
}

// get performs one request. retry reports whether a failure is worth another attempt.
func (c *Client) get(ctx context.Context, url string) (body []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, false, nil
}
