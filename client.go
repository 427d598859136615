package texsrc

import (
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/meigma/texsrc/internal/decompress"
)

// Defaults used by NewClient.
const (
	// DefaultEndpoint is the base URL that document identifiers are appended to.
	DefaultEndpoint = "https://arxiv.org/e-print/"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "texsrc"

	// DefaultMaxPayloadSize is the default download limit (256MB).
	DefaultMaxPayloadSize = 256 << 20
)

// Client fetches and decodes document source archives.
//
// A Client holds only configuration and is safe for concurrent use; every
// Fetch runs an independent pipeline.
type Client struct {
	httpClient  *nethttp.Client
	endpoint    string
	headers     nethttp.Header
	maxPayload  uint64
	maxInflated uint64
	chunkSize   int
	logger      *slog.Logger
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		httpClient:  nethttp.DefaultClient,
		endpoint:    DefaultEndpoint,
		headers:     make(nethttp.Header),
		maxPayload:  DefaultMaxPayloadSize,
		maxInflated: decompress.DefaultMaxSize,
	}
	c.headers.Set("User-Agent", DefaultUserAgent)
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// URL returns the location the source of id is fetched from.
func (c *Client) URL(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidID
	}
	return url.JoinPath(c.endpoint, id)
}
