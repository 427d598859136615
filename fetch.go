package texsrc

import (
	"context"

	srchttp "github.com/meigma/texsrc/http"
)

// FetchOption configures a Fetch operation.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	progress ProgressFunc
	events   chan<- ProgressEvent
}

// FetchWithProgress reports download and decode progress to fn.
//
// Events arrive in phase order: one PhaseDownloading event per chunk
// received, a single PhaseExtracting event once the payload is complete,
// and a single PhaseDone event after the entries are ordered.
func FetchWithProgress(fn ProgressFunc) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.progress = fn
	}
}

// FetchWithProgressChan sends progress events to ch in the same order
// FetchWithProgress reports them.
//
// Each send blocks until ch is received from or the fetch context is done,
// so the caller must drain ch until Fetch returns. Fetch never closes ch.
func FetchWithProgressChan(ch chan<- ProgressEvent) FetchOption {
	return func(cfg *fetchConfig) {
		cfg.events = ch
	}
}

// Fetch downloads the source payload of id and decodes it.
//
// Only retrieval failures are returned, as a *FetchError matching ErrFetch;
// no partial archive is ever returned. Cancelling ctx aborts the download.
func (c *Client) Fetch(ctx context.Context, id string, opts ...FetchOption) (*Archive, error) {
	cfg := fetchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	progress := cfg.reporter(ctx)

	u, err := c.URL(id)
	if err != nil {
		return nil, err
	}

	c.log().Debug("fetching source", "id", id, "url", u)

	srcOpts := []srchttp.Option{
		srchttp.WithClient(c.httpClient),
		srchttp.WithHeaders(c.headers),
		srchttp.WithMaxSize(c.maxPayload),
		srchttp.WithLogger(c.logger),
	}
	if c.chunkSize > 0 {
		srcOpts = append(srcOpts, srchttp.WithChunkSize(c.chunkSize))
	}
	payload, err := srchttp.NewSource(u, srcOpts...).Fetch(ctx, progress)
	if err != nil {
		c.log().Debug("fetch failed", "id", id, "error", err)
		return nil, err
	}

	archive := Decode(*payload, id,
		DecodeWithLogger(c.logger),
		DecodeWithMaxInflatedSize(c.maxInflated),
	)

	if progress != nil {
		loaded := uint64(len(payload.Data))
		total := loaded
		if payload.Length > 0 {
			total = uint64(payload.Length)
		}
		progress(ProgressEvent{
			Phase:       PhaseDone,
			BytesLoaded: loaded,
			BytesTotal:  total,
			Percent:     100,
		})
	}
	return archive, nil
}

// reporter combines the configured callback and channel into one ProgressFunc.
// It returns nil when neither is set.
func (cfg *fetchConfig) reporter(ctx context.Context) ProgressFunc {
	if cfg.events == nil {
		return cfg.progress
	}
	return func(ev ProgressEvent) {
		if cfg.progress != nil {
			cfg.progress(ev)
		}
		select {
		case cfg.events <- ev:
		case <-ctx.Done():
		}
	}
}
