package verse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// DefaultEndpoint is the public verse lookup service.
const DefaultEndpoint = "https://bible-api.com"

// ErrNotFound indicates the reference did not resolve to a verse.
var ErrNotFound = errors.New("verse not found")

// ErrUnavailable indicates the lookup service could not be reached or sent
// an unreadable answer.
var ErrUnavailable = errors.New("verse service unavailable")

// ErrEmptyReference is returned for blank references.
var ErrEmptyReference = errors.New("verse reference is empty")

// Verse is the canonical text for a reference.
type Verse struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation_name,omitempty"`
}

// Formatted renders the verse as "<reference>: <text>".
func (v *Verse) Formatted() string {
	return fmt.Sprintf("%s: %s", v.Reference, strings.TrimSpace(v.Text))
}

// Provider resolves verse references.
type Provider interface {
	Lookup(ctx context.Context, reference string) (*Verse, error)
}

// Config holds verse client settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Client queries a bible-api compatible endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

var _ Provider = (*Client)(nil)

// NewClient creates a verse client. Consecutive transport failures open a
// circuit breaker so lookups fail fast until the service recovers.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger.With().Str("component", "verse").Logger(),
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "verse-lookup",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing verse is a valid answer from a healthy service.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})

	return c
}

// Lookup fetches the verse for a reference such as "John 3:16". Any
// non-200 answer is reported as ErrNotFound.
func (c *Client) Lookup(ctx context.Context, reference string) (*Verse, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, ErrEmptyReference
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, ref)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}

	return res.(*Verse), nil
}

func (c *Client) fetch(ctx context.Context, ref string) (*Verse, error) {
	reqURL := c.endpoint + "/" + url.PathEscape(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Debug().Str("reference", ref).Int("status", resp.StatusCode).Msg("verse lookup miss")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	var v Verse
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: failed to decode verse response: %v", ErrUnavailable, err)
	}
	if v.Reference == "" {
		v.Reference = ref
	}

	return &v, nil
}
