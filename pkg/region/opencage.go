package region

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.opencagedata.com/geocode/v1/json"

// OpenCage resolves addresses through the OpenCage forward-geocoding API.
type OpenCage struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// OpenCageOption configures the client.
type OpenCageOption func(*OpenCage)

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(u string) OpenCageOption {
	return func(o *OpenCage) { o.baseURL = u }
}

// WithHTTPClient replaces the default client and its timeout.
func WithHTTPClient(c *http.Client) OpenCageOption {
	return func(o *OpenCage) { o.client = c }
}

// NewOpenCage builds a client with a bounded per-request timeout.
func NewOpenCage(apiKey string, opts ...OpenCageOption) *OpenCage {
	o := &OpenCage{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type geocodeResponse struct {
	Results []struct {
		Components map[string]any `json:"components"`
	} `json:"results"`
}

// Resolve queries the API with retries and exponential backoff. Transport
// errors and 5xx responses are retried; client errors are not.
func (o *OpenCage) Resolve(ctx context.Context, address string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		code, retryable, err := o.resolveOnce(ctx, address)
		if err == nil {
			return code, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("geocode %q failed after 3 attempts: %w", address, lastErr)
}

func (o *OpenCage) resolveOnce(ctx context.Context, address string) (code string, retryable bool, err error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return "", false, fmt.Errorf("base url: %w", err)
	}
	q := u.Query()
	q.Set("q", address)
	q.Set("key", o.apiKey)
	q.Set("limit", "1")
	q.Set("no_annotations", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return "", true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("geocode HTTP %d", resp.StatusCode)
		return "", resp.StatusCode >= 500, err
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(body.Results) == 0 {
		return "", false, nil
	}
	return subdivisionCode(body.Results[0].Components), false, nil
}

// subdivisionCode extracts an ISO 3166-2 code from a result's components:
// the dedicated ISO_3166-2 field (list or scalar) wins, else country
// alpha-2 + state_code are combined, else there is no code.
func subdivisionCode(components map[string]any) string {
	switch v := components["ISO_3166-2"].(type) {
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if v != "" {
			return v
		}
	}

	country, _ := components["ISO_3166-1_alpha-2"].(string)
	state, _ := components["state_code"].(string)
	if country != "" && state != "" {
		return country + "-" + state
	}
	return ""
}
