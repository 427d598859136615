package texsrc

import (
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"net/url"
)

// Option configures a Client.
type Option func(*Client) error

// --- Transport Options ---

// WithHTTPClient sets the HTTP client used for downloads.
// Timeouts and proxies are configured on the client.
func WithHTTPClient(client *nethttp.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = client
		return nil
	}
}

// WithEndpoint sets the base URL that document identifiers are appended to.
// The URL must be absolute with an http or https scheme.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid endpoint %q: scheme must be http or https", endpoint)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid endpoint %q: missing host", endpoint)
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithUserAgent sets the User-Agent header for download requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.headers.Set("User-Agent", ua)
		return nil
	}
}

// WithHeader sets an additional header on every download request.
func WithHeader(key, value string) Option {
	return func(c *Client) error {
		c.headers.Set(key, value)
		return nil
	}
}

// --- Limits ---

// WithMaxPayloadSize limits the number of bytes downloaded per fetch.
// Larger payloads fail with ErrFetch. Set limit to 0 to disable the limit.
func WithMaxPayloadSize(limit uint64) Option {
	return func(c *Client) error {
		c.maxPayload = limit
		return nil
	}
}

// WithMaxInflatedSize limits the inflated size of gzip and zip payloads.
// Larger payloads are shown as raw text. Set limit to 0 to disable the limit.
func WithMaxInflatedSize(limit uint64) Option {
	return func(c *Client) error {
		c.maxInflated = limit
		return nil
	}
}

// WithChunkSize sets the read size used while downloading, which bounds
// how often progress is reported.
func WithChunkSize(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return errors.New("chunk size must be non-negative")
		}
		c.chunkSize = n
		return nil
	}
}

// --- Logging ---

// WithLogger sets the logger for fetch and decode diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}
