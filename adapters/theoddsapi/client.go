package theoddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/betpilot/tipster/pkg/contracts"
	"github.com/betpilot/tipster/pkg/models"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com"
	apiVersion     = "v4"
	userAgent      = "Tipster/1.0 (Odds Dashboard)"
	requestTimeout = 10 * time.Second
	maxRetries     = 3
	retryDelay     = 2 * time.Second

	defaultDays = 5
	minDays     = 1
	maxDays     = 30
)

var defaultMarkets = []string{models.MarketMoneyline, models.MarketSpreads, models.MarketTotals}

// Client talks to The Odds API v4 and implements contracts.OddsProvider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	// regionOverrides holds catalog-configured regions per sport ID; sports
	// without an entry fall back to the prefix-based default.
	regionOverrides map[string][]string

	// suggestions are offered on NotAvailable errors.
	suggestions func(sportID string) []string

	rateLimits models.RateLimits
	mu         sync.RWMutex

	now func() time.Time
}

// Ensure Client implements OddsProvider.
var _ contracts.OddsProvider = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different host (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for fan-out failure reporting.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRegionOverrides sets catalog-configured regions per sport.
func WithRegionOverrides(m map[string][]string) Option {
	return func(c *Client) { c.regionOverrides = m }
}

// WithSuggestions sets the alternative-sports source for NotAvailable errors.
func WithSuggestions(fn func(sportID string) []string) Option {
	return func(c *Client) { c.suggestions = fn }
}

// NewClient creates a new The Odds API client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOdds retrieves featured-market fixtures for one sport within the
// commence-time window [now, now+Days*24h).
func (c *Client) GetOdds(ctx context.Context, sportID string, opts models.GetOddsOptions) ([]models.Fixture, error) {
	days := opts.Days
	if days == 0 {
		days = defaultDays
	}
	if days < minDays || days > maxDays {
		return nil, fmt.Errorf("fetch odds for %s: %w (got %d)", sportID, ErrInvalidDays, days)
	}

	from := c.now().UTC().Truncate(time.Second)
	to := from.Add(time.Duration(days) * 24 * time.Hour)

	endpoint := fmt.Sprintf("%s/%s/sports/%s/odds", c.baseURL, apiVersion, sportID)

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", strings.Join(c.regionsFor(sportID, opts.Regions), ","))
	params.Set("markets", strings.Join(marketsOrDefault(opts.Markets), ","))
	params.Set("oddsFormat", oddsFormatOrDefault(opts.OddsFormat))
	params.Set("dateFormat", "iso")
	params.Set("commenceTimeFrom", from.Format("2006-01-02T15:04:05Z"))
	params.Set("commenceTimeTo", to.Format("2006-01-02T15:04:05Z"))

	body, err := c.doRequestWithRetry(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, c.classify(sportID, err)
	}

	var fixtures []models.Fixture
	if err := json.Unmarshal(body, &fixtures); err != nil {
		return nil, &UpstreamError{Sport: sportID, Message: fmt.Sprintf("parse odds response: %v", err)}
	}

	return fixtures, nil
}

// GetMultipleSportsOdds fans out GetOdds per sport in parallel and joins all
// results. A failed sport logs the failure and resolves to an empty slice.
func (c *Client) GetMultipleSportsOdds(ctx context.Context, sportIDs []string, opts models.GetOddsOptions) map[string][]models.Fixture {
	results := make(map[string][]models.Fixture, len(sportIDs))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, sportID := range sportIDs {
		wg.Add(1)
		go func(sportID string) {
			defer wg.Done()

			fixtures, err := c.GetOdds(ctx, sportID, opts)
			if err != nil {
				c.logger.Warn("fan-out odds fetch failed",
					zap.String("sport", sportID),
					zap.Error(err))
				fixtures = []models.Fixture{}
			}

			mu.Lock()
			results[sportID] = fixtures
			mu.Unlock()
		}(sportID)
	}
	wg.Wait()

	return results
}

// GetRateLimits returns the most recently observed upstream quota.
func (c *Client) GetRateLimits() models.RateLimits {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimits
}

// regionsFor resolves the bookmaker regions for a sport: explicit options
// first, then catalog overrides, then the prefix-based default.
func (c *Client) regionsFor(sportID string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if regions, ok := c.regionOverrides[sportID]; ok {
		return regions
	}
	if strings.HasPrefix(sportID, "soccer_") {
		return []string{"us", "uk", "eu"}
	}
	return []string{"us"}
}

func marketsOrDefault(markets []string) []string {
	if len(markets) > 0 {
		return markets
	}
	return defaultMarkets
}

func oddsFormatOrDefault(format string) string {
	if format != "" {
		return format
	}
	return "american"
}

// doRequestWithRetry performs the request with exponential backoff. Client
// errors (4xx including 429) are never retried; they carry policy the caller
// must see immediately. Timeouts stop retrying so the caller's retry budget
// stays predictable.
func (c *Client) doRequestWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := retryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := c.doRequest(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if httpErr, ok := err.(*httpError); ok {
			if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 {
				return nil, err
			}
		}
		if isTimeout(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// doRequest performs a single HTTP request.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.updateRateLimits(resp.Header)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}

// classify translates transport-level failures into the typed taxonomy.
func (c *Client) classify(sportID string, err error) error {
	if httpErr, ok := err.(*httpError); ok {
		switch httpErr.StatusCode {
		case http.StatusUnprocessableEntity:
			return &NotAvailableError{Sport: sportID, Suggestions: c.suggestionsFor(sportID)}
		case http.StatusTooManyRequests:
			return &RateLimitedError{Sport: sportID}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ConfigurationError{Message: httpErr.Message}
		default:
			return &UpstreamError{Sport: sportID, StatusCode: httpErr.StatusCode, Message: httpErr.Message}
		}
	}

	if isTimeout(err) {
		return &TimeoutError{Sport: sportID, Err: err}
	}

	return &UpstreamError{Sport: sportID, Message: err.Error()}
}

func (c *Client) suggestionsFor(sportID string) []string {
	if c.suggestions == nil {
		return nil
	}
	return c.suggestions(sportID)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// updateRateLimits extracts rate limit info from response headers.
func (c *Client) updateRateLimits(headers http.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining := headers.Get("x-requests-remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimits.RequestsRemaining = val
		}
	}

	if used := headers.Get("x-requests-used"); used != "" {
		if val, err := strconv.Atoi(used); err == nil {
			c.rateLimits.RequestsUsed = val
		}
	}
}

// httpError carries a non-2xx status before classification.
type httpError struct {
	StatusCode int
	Message    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
