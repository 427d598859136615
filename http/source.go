// Package http fetches source payloads from a document-source endpoint.
package http //nolint:revive // intentional naming for domain clarity

import (
	"context"
	"io"
	"log/slog"
	nethttp "net/http"

	"github.com/meigma/texsrc/internal/srctype"
	"github.com/meigma/texsrc/internal/stream"
)

// Source downloads a single payload with a streaming GET request.
type Source struct {
	url       string
	client    *nethttp.Client
	headers   nethttp.Header
	maxSize   uint64
	chunkSize int
	logger    *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithClient sets the HTTP client used for requests.
func WithClient(client *nethttp.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithHeaders sets additional headers on each request.
func WithHeaders(headers nethttp.Header) Option {
	return func(s *Source) {
		if headers == nil {
			return
		}
		s.headers = headers.Clone()
	}
}

// WithHeader sets a single header on each request.
func WithHeader(key, value string) Option {
	return func(s *Source) {
		if s.headers == nil {
			s.headers = make(nethttp.Header)
		}
		s.headers.Set(key, value)
	}
}

// WithMaxSize fails the fetch once more than limit bytes arrive.
// Set limit to 0 to disable the limit.
func WithMaxSize(limit uint64) Option {
	return func(s *Source) {
		s.maxSize = limit
	}
}

// WithChunkSize sets the size of each body read, which bounds how often
// progress is reported.
func WithChunkSize(n int) Option {
	return func(s *Source) {
		s.chunkSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a Source for url. No request is made until Fetch.
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:    url,
		client: nethttp.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = nethttp.DefaultClient
	}
	return s
}

// URL returns the requested location.
func (s *Source) URL() string {
	return s.url
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Source) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Fetch downloads the payload, reporting progress for every chunk received
// and once more when the body is complete.
//
// A transport error, a non-2xx status, or a failed body read returns a
// *srctype.FetchError and no payload. Cancelling ctx aborts the download.
func (s *Source) Fetch(ctx context.Context, progress srctype.ProgressFunc) (*srctype.Payload, error) {
	req, err := s.newRequest(ctx)
	if err != nil {
		return nil, &srctype.FetchError{URL: s.url, Err: err}
	}

	s.log().Debug("fetching payload", "url", s.url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &srctype.FetchError{URL: s.url, Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body) //nolint:errcheck // best-effort drain for connection reuse
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &srctype.FetchError{URL: s.url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	opts := []stream.Option{stream.WithLimit(s.maxSize)}
	if s.chunkSize > 0 {
		opts = append(opts, stream.WithChunkSize(s.chunkSize))
	}
	data, err := stream.Accumulate(ctx, resp.Body, resp.ContentLength, progress, opts...)
	if err != nil {
		return nil, &srctype.FetchError{URL: s.url, StatusCode: resp.StatusCode, Err: err}
	}

	s.log().Debug("fetched payload",
		"url", s.url,
		"bytes", len(data),
		"content_type", resp.Header.Get("Content-Type"),
	)
	return &srctype.Payload{
		Data:      data,
		Length:    resp.ContentLength,
		MediaType: resp.Header.Get("Content-Type"),
	}, nil
}

// newRequest creates the GET request with configured headers.
//
// Accept-Encoding defaults to identity so the transport never inflates a
// gzip payload before it is sniffed.
func (s *Source) newRequest(ctx context.Context) (*nethttp.Request, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, s.url, nethttp.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "identity")
	}
	return req, nil
}
