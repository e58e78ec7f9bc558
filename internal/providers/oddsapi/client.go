package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/XavierBriggs/fortuna/services/betedge/internal/retry"
	"github.com/XavierBriggs/fortuna/services/betedge/pkg/models"
)

const (
	// DefaultBaseURL is the public the-odds-api host
	DefaultBaseURL = "https://api.the-odds-api.com"

	headerRemaining = "x-requests-remaining"
	headerUsed      = "x-requests-used"
)

// ErrUnauthorized is returned when the provider rejects the API key
var ErrUnauthorized = errors.New("odds api: unauthorized")

// StatusError is a non-200 response from the provider
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("odds api error: status=%d, body=%s", e.StatusCode, e.Body)
}

// QuotaRecorder receives the remaining request quota after each call
type QuotaRecorder interface {
	SetQuotaRemaining(remaining int)
}

// Config configures the client
type Config struct {
	APIKey  string
	BaseURL string
	Regions []string
	Timeout time.Duration
}

// Client fetches odds snapshots from the-odds-api v4
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	regions    string
	retry      *retry.RetryPolicy
	quota      QuotaRecorder
	logger     *zap.Logger
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy retries transient failures (429, 5xx, transport errors)
func WithRetryPolicy(p *retry.RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithQuotaRecorder reports the x-requests-remaining header
func WithQuotaRecorder(q QuotaRecorder) Option {
	return func(c *Client) { c.quota = q }
}

// New creates a new odds api client
func New(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	regions := strings.Join(cfg.Regions, ",")
	if regions == "" {
		regions = "us"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		regions:    regions,
		retry:      retry.NewRetryPolicy(1, 0, 0),
		logger:     logger.Named("oddsapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetEvents fetches every upcoming event for a sport with decimal prices
func (c *Client) GetEvents(ctx context.Context, sportKey string, markets []string) ([]models.Event, error) {
	params := url.Values{}
	params.Set("regions", c.regions)
	params.Set("markets", strings.Join(markets, ","))
	params.Set("oddsFormat", "decimal")
	params.Set("dateFormat", "iso")

	var events []models.Event
	path := "/v4/sports/" + url.PathEscape(sportKey) + "/odds"
	if err := c.get(ctx, path, params, &events); err != nil {
		return nil, fmt.Errorf("fetching %s odds: %w", sportKey, err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// GetSports lists the sports the provider currently covers
func (c *Client) GetSports(ctx context.Context) ([]models.Sport, error) {
	var sports []models.Sport
	if err := c.get(ctx, "/v4/sports", url.Values{}, &sports); err != nil {
		return nil, fmt.Errorf("fetching sports: %w", err)
	}
	return sports, nil
}

// Ping checks the provider is reachable. The sports endpoint does not
// count against the request quota.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetSports(ctx)
	return err
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	return c.retry.Execute(ctx, func(ctx context.Context) error {
		return c.do(ctx, endpoint, path, out)
	})
}

func (c *Client) do(ctx context.Context, endpoint, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return retry.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Permanent(err)
		}
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	c.recordQuota(path, resp, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return retry.Permanent(ErrUnauthorized)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		if isRetryable(resp.StatusCode) {
			return statusErr
		}
		return retry.Permanent(statusErr)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return retry.Permanent(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func (c *Client) recordQuota(path string, resp *http.Response, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	}

	if remaining, err := strconv.Atoi(resp.Header.Get(headerRemaining)); err == nil {
		fields = append(fields, zap.Int("requests_remaining", remaining))
		if c.quota != nil {
			c.quota.SetQuotaRemaining(remaining)
		}
	}
	if used := resp.Header.Get(headerUsed); used != "" {
		fields = append(fields, zap.String("requests_used", used))
	}

	c.logger.Debug("odds api response", fields...)
}

func isRetryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
