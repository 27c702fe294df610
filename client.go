package amos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Authentication headers required by the AMOS gateway.
const (
	headerLicense    = "x-mvr-license"
	headerBuyerEmail = "x-buyer-email"
)

const (
	defaultUserAgent = "amos-mvr-api-go-client/1.0.0"

	// defaultBackoffBase is one backoff "time unit": transport-failure
	// attempt a sleeps base<<a before retrying.
	defaultBackoffBase = 1 * time.Second

	// defaultRetryAfterSeconds applies when a 429 carries no usable
	// Retry-After header.
	defaultRetryAfterSeconds = 60
)

// API paths.
const (
	pathScore  = "/v1/amos/score"
	pathHealth = "/health"
)

// Client calls the AMOS-MVR API. All fields are fixed at construction, so a
// single Client is safe for concurrent use; each call carries its own retry
// state and no state is shared across calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	licenseKey string
	buyerEmail string
	userAgent  string
	maxRetries int

	backoffBase    time.Duration
	retryAfterUnit time.Duration

	// sleep blocks for the given delay or until ctx is done. Swapped out
	// in tests to observe backoff decisions without waiting them out.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The caller's client is
// used as-is; Config.Timeout is not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithBackoffBase sets the unit delay for exponential backoff after transport
// failures. Attempt a sleeps base<<a. Defaults to one second.
func WithBackoffBase(base time.Duration) Option {
	return func(c *Client) {
		if base > 0 {
			c.backoffBase = base
		}
	}
}

// New assembles a Client from cfg. Pure configuration: no network I/O occurs
// until the first call. Fails only on structurally invalid configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("amos: %w", err)
	}

	c := &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		licenseKey:     cfg.LicenseKey,
		buyerEmail:     cfg.BuyerEmail,
		userAgent:      defaultUserAgent,
		maxRetries:     cfg.MaxRetries,
		backoffBase:    defaultBackoffBase,
		retryAfterUnit: time.Second,
	}
	c.sleep = c.sleepContext
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Score computes the AMOS relational risk score, porosity, MVR, and safe
// credit limits for one entity. The request is validated locally first;
// invalid payloads never reach the wire.
func (c *Client) Score(ctx context.Context, req *ScoreRequest) (*ScoreResponse, error) {
	if req == nil {
		return nil, validationError(fmt.Errorf("nil score request: %w", ErrInvalidRequest))
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}

	raw, err := c.do(ctx, http.MethodPost, pathScore, req)
	if err != nil {
		return nil, err
	}

	resp, err := decodeScoreResponse(raw)
	if err != nil {
		return nil, validationError(err)
	}
	return resp, nil
}

// Health probes GET /health and returns the engine, wrapper, and timestamp
// reported by the gateway.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	raw, err := c.do(ctx, http.MethodGet, pathHealth, nil)
	if err != nil {
		return nil, err
	}

	resp, err := decodeHealthResponse(raw)
	if err != nil {
		return nil, validationError(err)
	}
	return resp, nil
}

// rawResponse is the consumed result of one transport attempt. The body is
// fully read and the connection released before classification begins.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

// do runs the bounded attempt loop: issue the request, classify the outcome,
// then return, retry, or fail. Two retry timings coexist: transport failures
// back off exponentially (base<<attempt, unjittered) while 429s honor the
// server's Retry-After. Every other non-200 status is terminal on first
// occurrence.
func (c *Client) do(ctx context.Context, method, path string, body any) (map[string]any, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, validationError(fmt.Errorf("encode request body: %w", err))
		}
	}

	url := c.baseURL + path

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		resp, err := c.send(ctx, method, url, payload)
		if err != nil {
			if attempt == c.maxRetries {
				return nil, &Error{
					Kind:    KindNetwork,
					Message: fmt.Sprintf("request to %s failed after %d attempt(s): %v", path, attempt+1, err),
					Details: map[string]any{"cause": err.Error()},
					cause:   err,
				}
			}
			if serr := c.sleep(ctx, c.backoffBase<<attempt); serr != nil {
				return nil, &Error{
					Kind:    KindNetwork,
					Message: fmt.Sprintf("canceled while backing off: %v", serr),
					cause:   serr,
				}
			}
			continue
		}

		data, parsed := parseBody(resp)

		if resp.status == http.StatusOK && parsed {
			return data, nil
		}

		if resp.status == http.StatusTooManyRequests && attempt < c.maxRetries {
			delay := time.Duration(retryAfterSeconds(resp.header)) * c.retryAfterUnit
			if serr := c.sleep(ctx, delay); serr != nil {
				return nil, &Error{
					Kind:    KindNetwork,
					Message: fmt.Sprintf("canceled while rate limited: %v", serr),
					cause:   serr,
				}
			}
			continue
		}

		// Terminal: map the body (parsed or synthesized) into the typed
		// error. A final 429 lands here too, carrying its own body.
		return nil, errorFromBody(resp.status, data)
	}

	// Unreachable if the loop above is correct.
	return nil, &Error{Kind: KindUnknown, Message: "retries exhausted without a definitive response"}
}

// send performs one transport attempt. The response body is drained and
// closed before returning so no connection is held across attempts.
func (c *Client) send(ctx context.Context, method, url string, payload []byte) (*rawResponse, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerLicense, c.licenseKey)
	req.Header.Set(headerBuyerEmail, c.buyerEmail)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &rawResponse{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

// parseBody decodes a response body into a JSON object. Non-object bodies
// (e.g. a bare array) are wrapped as {"data": ...}. Bodies that are not JSON
// at all yield a synthesized error envelope and parsed=false, which forces
// the caller down the error-mapping path even on a 200.
func parseBody(resp *rawResponse) (data map[string]any, parsed bool) {
	var value any
	if err := json.Unmarshal(resp.body, &value); err != nil {
		return map[string]any{
			"error":      fmt.Sprintf("non-structured response from service (status %d)", resp.status),
			"details":    map[string]any{"text": string(resp.body)},
			"request_id": nil,
		}, false
	}

	if obj, ok := value.(map[string]any); ok {
		return obj, true
	}
	return map[string]any{"data": value}, true
}

// retryAfterSeconds reads the Retry-After header as integer seconds,
// defaulting when absent or unparsable.
func retryAfterSeconds(h http.Header) int {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return defaultRetryAfterSeconds
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultRetryAfterSeconds
	}
	return n
}

// sleepContext blocks for d or until ctx is done. Only the calling operation
// waits; nothing client-wide is held.
func (c *Client) sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
