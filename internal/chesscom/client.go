package chesscom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathanfox5/chessfluff/internal/version"
)

// DefaultBaseURL is the public, unauthenticated chess.com REST API.
const DefaultBaseURL = "https://api.chess.com/pub"

const (
	defaultTimeout  = 15 * time.Second
	defaultAttempts = 3
	// chess.com clears 429 blocks roughly a minute after the offending
	// burst; waiting slightly longer avoids hitting the limit twice.
	defaultCooldown = 60*time.Second + 100*time.Millisecond

	defaultPaceRPS   = 5.0
	defaultPaceBurst = 5

	maxErrorBody = 4 << 10
)

// Identity identifies the API caller. chess.com asks automated clients to
// send a User-Agent naming a username and contact address so that traffic
// can be attributed.
type Identity struct {
	Username string
	Email    string
}

// UserAgent renders the request header value for this identity.
func (id Identity) UserAgent() string {
	return fmt.Sprintf("%s/%s (username: %s; contact: %s, url: %s)",
		version.Name, version.Version, id.Username, id.Email, version.SourceURL)
}

// Client calls the chess.com public API. All requests carry the identity
// User-Agent, are paced by a token bucket, and honour a cool-down window
// when the API answers 429.
type Client struct {
	base      string
	http      *http.Client
	userAgent string
	pacer     pacer
	attempts  int
	cooldown  time.Duration
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

// Option configures Client behaviour.
type Option func(*Client)

// WithBaseURL overrides the API base URL (primarily for tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.base = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger attaches a logger for retry and cool-down events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetry sets the attempt budget per request and the cool-down applied
// after a 429 response. Attempts below one are treated as one.
func WithRetry(attempts int, cooldown time.Duration) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = attempts
		if cooldown >= 0 {
			c.cooldown = cooldown
		}
	}
}

// WithPacing sets the outbound request rate. A non-positive rate disables
// pacing.
func WithPacing(ratePerSecond float64, burst int) Option {
	return func(c *Client) {
		c.pacer = newTokenBucketPacer(ratePerSecond, burst)
	}
}

// New constructs a Client for the given caller identity.
func New(id Identity, opts ...Option) *Client {
	c := &Client{
		base:      DefaultBaseURL,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: id.UserAgent(),
		pacer:     newTokenBucketPacer(defaultPaceRPS, defaultPaceBurst),
		attempts:  defaultAttempts,
		cooldown:  defaultCooldown,
		logger:    zap.NewNop(),
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile fetches /pub/player/{username}.
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var p Profile
	if err := c.getJSON(ctx, c.playerURL(username), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Stats fetches /pub/player/{username}/stats.
func (c *Client) Stats(ctx context.Context, username string) (*Stats, error) {
	var s Stats
	if err := c.getJSON(ctx, c.playerURL(username, "stats"), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Archives fetches /pub/player/{username}/games/archives and returns the
// monthly archive URLs in the API's chronological order.
func (c *Client) Archives(ctx context.Context, username string) ([]string, error) {
	var idx struct {
		Archives []string `json:"archives"`
	}
	if err := c.getJSON(ctx, c.playerURL(username, "games", "archives"), &idx); err != nil {
		return nil, err
	}
	return idx.Archives, nil
}

// MonthlyGames fetches one archive page. The URL must be taken verbatim
// from Archives; chess.com returns absolute URLs there.
func (c *Client) MonthlyGames(ctx context.Context, archiveURL string) ([]Game, error) {
	var page struct {
		Games []Game `json:"games"`
	}
	if err := c.getJSON(ctx, archiveURL, &page); err != nil {
		return nil, err
	}
	return page.Games, nil
}

// Country fetches /pub/country/{code}.
func (c *Client) Country(ctx context.Context, code string) (*Country, error) {
	var country Country
	u := c.base + "/country/" + url.PathEscape(strings.ToUpper(strings.TrimSpace(code)))
	if err := c.getJSON(ctx, u, &country); err != nil {
		return nil, err
	}
	return &country, nil
}

// playerURL builds /pub/player/{username}[/...]. Usernames are
// case-insensitive upstream; the canonical URL form is lowercase.
func (c *Client) playerURL(username string, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, "player", url.PathEscape(strings.ToLower(strings.TrimSpace(username))))
	for _, part := range parts {
		segments = append(segments, url.PathEscape(part))
	}
	return c.base + "/" + strings.Join(segments, "/")
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	res, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return nil
}

// get performs one GET with the configured attempt budget. Only 429
// responses are retried; the cool-down runs between attempts.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", rawURL, err)
		}

		if res.StatusCode == http.StatusOK {
			return res, nil
		}

		apiErr := drainAPIError(res, rawURL)

		if res.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, rawURL)
		}
		if res.StatusCode != http.StatusTooManyRequests || attempt >= c.attempts {
			return nil, apiErr
		}

		c.logger.Info("rate limited by chess.com, waiting before retry",
			zap.String("url", rawURL),
			zap.Duration("cooldown", c.cooldown),
			zap.Int("attempt", attempt),
		)
		if err := c.sleep(ctx, c.cooldown); err != nil {
			return nil, err
		}
	}
}

// drainAPIError consumes and closes the response body of a failed request
// and extracts chess.com's error message when one is present.
func drainAPIError(res *http.Response, rawURL string) *APIError {
	defer res.Body.Close()

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(res.Body, maxErrorBody)).Decode(&payload)

	return &APIError{
		StatusCode: res.StatusCode,
		Message:    payload.Message,
		URL:        rawURL,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
