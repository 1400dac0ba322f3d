package discogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the default Discogs API endpoint.
	DefaultBaseURL = "https://api.discogs.com"

	// DefaultUserAgent identifies the client to Discogs, which rejects
	// requests without a User-Agent.
	DefaultUserAgent = "crates/1.0 +https://github.com/jfmyers9/crates"
)

// endpoints maps fetchable kinds to their URL path.
var endpoints = map[string]string{
	KindRelease: "releases",
	KindMaster:  "masters",
	KindArtist:  "artists",
	KindLabel:   "labels",
}

// Config holds client configuration.
type Config struct {
	Token      string       // Required: Discogs personal access token
	UserAgent  string       // Optional: User-Agent header (defaults to DefaultUserAgent)
	BaseURL    string       // Optional: Base URL for API (defaults to Discogs API, used for testing)
	HTTPClient *http.Client // Optional: HTTP client for the default fetcher
	Fetcher    Fetcher      // Optional: replaces the HTTP transport entirely
	Registry   *Registry    // Optional: schema registry (defaults to DefaultRegistry)
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Discogs API operations. It is safe
// for concurrent use.
type Client struct {
	creds     Credentials
	userAgent string
	baseURL   string
	fetcher   Fetcher
	registry  *Registry
	logger    Logger
}

// NewClient creates a new Discogs API client.
//
// Returns a *ConfigError if the token is missing. No request is made.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, &ConfigError{Field: "Token", Reason: "is required"}
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(cfg.HTTPClient)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	registry := cfg.Registry
	if registry == nil {
		registry = DefaultRegistry
	}

	return &Client{
		creds:     Credentials{Token: cfg.Token},
		userAgent: userAgent,
		baseURL:   strings.TrimRight(baseURL, "/"),
		fetcher:   fetcher,
		registry:  registry,
		logger:    cfg.Logger,
	}, nil
}

// Credentials returns the credentials attached to every request.
func (c *Client) Credentials() Credentials {
	return c.creds
}

// Registry returns the registry entities are resolved against.
func (c *Client) Registry() *Registry {
	return c.registry
}

// Release fetches a release by ID.
func (c *Client) Release(ctx context.Context, id int) (*Release, error) {
	e, err := c.Fetch(ctx, KindRelease, id)
	if err != nil {
		return nil, err
	}
	return &Release{e}, nil
}

// Master fetches a master release by ID.
func (c *Client) Master(ctx context.Context, id int) (*Master, error) {
	e, err := c.Fetch(ctx, KindMaster, id)
	if err != nil {
		return nil, err
	}
	return &Master{e}, nil
}

// Artist fetches an artist by ID.
func (c *Client) Artist(ctx context.Context, id int) (*Artist, error) {
	e, err := c.Fetch(ctx, KindArtist, id)
	if err != nil {
		return nil, err
	}
	return &Artist{e}, nil
}

// Label fetches a label by ID.
func (c *Client) Label(ctx context.Context, id int) (*Label, error) {
	e, err := c.Fetch(ctx, KindLabel, id)
	if err != nil {
		return nil, err
	}
	return &Label{e}, nil
}

// URLPrefix returns the URL that IDs of kind are appended to.
func (c *Client) URLPrefix(kind string) (string, error) {
	path, ok := endpoints[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoEndpoint, kind)
	}
	return c.baseURL + "/" + path + "/", nil
}

// Fetch retrieves one entity of kind by ID with a single request.
//
// A 404 is reported as *NotFoundError and any other non-2xx status as
// *FetchError. The client does not retry.
func (c *Client) Fetch(ctx context.Context, kind string, id int) (*Entity, error) {
	prefix, err := c.URLPrefix(kind)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidID, id)
	}

	reqURL := prefix + strconv.Itoa(id)
	resp, err := c.Get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{ID: id, URLPrefix: prefix}
	}
	if !isSuccess(resp.StatusCode) {
		return nil, &FetchError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	payload, ok := asPayload(resp.Body)
	if !ok {
		return nil, &FetchError{
			StatusCode: resp.StatusCode,
			URL:        reqURL,
			Err:        fmt.Errorf("body is %s, not an object", jsonTypeName(resp.Body)),
		}
	}

	return c.registry.wrap(kind, payload), nil
}

// Get sends an authenticated GET to an arbitrary API URL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	c.logDebugf("discogs: GET %s", rawURL)

	resp, err := c.fetcher.Fetch(ctx, Request{
		URL:         rawURL,
		Credentials: c.creds,
		UserAgent:   c.userAgent,
	})
	if err != nil {
		c.logDebugf("discogs: GET %s failed: %v", rawURL, err)
		return nil, err
	}
	if resp == nil {
		return nil, &TransportError{URL: rawURL, Err: errors.New("fetcher returned no response")}
	}

	c.logDebugf("discogs: GET %s -> %d", rawURL, resp.StatusCode)
	return resp, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
