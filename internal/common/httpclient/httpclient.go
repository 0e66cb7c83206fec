// Package httpclient is the single point of egress to the event REST API.
// It builds requests against one base URL, attaches the stored bearer token,
// serializes bodies, decodes typed responses and classifies every failure
// into one apperrors kind. A 401 response deletes the stored token and
// publishes eventbus.TopicSessionExpired.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chupacabra/chupacabra/internal/common/eventbus"
	"github.com/chupacabra/chupacabra/internal/credstore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout        = 30 * time.Second
	defaultPublishTimeout = 100 * time.Millisecond
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the connection settings of a Client.
type Config struct {
	BaseURL string        // absolute http or https URL every path is joined to
	Timeout time.Duration // per-call timeout of the default transport; zero means DefaultTimeout
}

// Client issues authenticated calls. It is safe for concurrent use.
type Client struct {
	baseURL        *url.URL
	store          credstore.Store
	bus            *eventbus.EventBus
	http           Doer
	logger         zerolog.Logger
	userAgent      string
	publishTimeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.http = d
	}
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent sets the User-Agent header of every call.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithPublishTimeout bounds how long a 401 waits on a slow expiry subscriber.
func WithPublishTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.publishTimeout = d
	}
}

// NewClient validates cfg and returns a Client reading tokens from store.
// bus may be nil, in which case session expiry is not broadcast.
func NewClient(cfg Config, store credstore.Store, bus *eventbus.EventBus, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, errors.New("credential store is required")
	}
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must start with http:// or https://, got %q", cfg.BaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no host", cfg.BaseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:        u,
		store:          store,
		bus:            bus,
		http:           &http.Client{Timeout: timeout},
		logger:         log.Logger,
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the URL every request path is joined to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Store returns the credential store the client reads from.
func (c *Client) Store() credstore.Store {
	return c.store
}

// expireSession runs the 401 side effects.
func (c *Client) expireSession(ctx context.Context) {
	c.store.Delete()
	if c.bus == nil {
		return
	}
	n := c.bus.Publish(eventbus.TopicSessionExpired, nil, c.publishTimeout)
	c.loggerFor(ctx).Info().Int("subscribers", n).Msg("session expired")
}

func (c *Client) loggerFor(ctx context.Context) *zerolog.Logger {
	l := c.logger.With().Logger()
	if ctx != nil {
		if id := requestID(ctx); id != "" {
			l = l.With().Str("request_id", id).Logger()
		}
	}
	return &l
}
