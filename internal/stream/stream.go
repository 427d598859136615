// Package stream accumulates a payload from an incremental byte source while
// reporting download progress.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/meigma/texsrc/internal/srctype"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 32 << 10

// maxPrealloc caps buffer growth taken on trust from a declared length.
const maxPrealloc = 64 << 20

// ErrTooLarge is returned when a payload exceeds the configured limit.
var ErrTooLarge = errors.New("payload exceeds size limit")

// Reporter wraps a reader, counting bytes read and emitting a downloading
// event for every non-empty read.
type Reporter struct {
	R io.Reader

	// N is the number of bytes read so far.
	N uint64

	// Total is the declared payload length. Values <= 0 mean unknown.
	Total int64

	// Progress receives events. May be nil.
	Progress srctype.ProgressFunc
}

// Read implements io.Reader.
func (r *Reporter) Read(p []byte) (int, error) {
	n, err := r.R.Read(p)
	if n > 0 {
		r.N += uint64(n) //nolint:gosec // n is non-negative by io.Reader contract
		r.emit(srctype.PhaseDownloading)
	}
	return n, err
}

// Event returns the current progress snapshot for phase.
func (r *Reporter) Event(phase srctype.Phase) srctype.ProgressEvent {
	ev := srctype.ProgressEvent{
		Phase:       phase,
		BytesLoaded: r.N,
		BytesTotal:  r.N,
	}
	if r.Total > 0 {
		ev.BytesTotal = uint64(r.Total)
		ev.Percent = Percent(r.N, ev.BytesTotal)
	}
	return ev
}

func (r *Reporter) emit(phase srctype.Phase) {
	if r.Progress != nil {
		r.Progress(r.Event(phase))
	}
}

// Percent returns round(loaded/total*100), clamped to [0, 100].
// A zero total yields 0.
func Percent(loaded, total uint64) int {
	if total == 0 {
		return 0
	}
	pct := math.Round(float64(loaded) / float64(total) * 100)
	return int(min(pct, 100))
}

// Option configures Accumulate.
type Option func(*config)

type config struct {
	chunkSize int
	limit     uint64
}

// WithChunkSize sets the size of each read. Values <= 0 use DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(c *config) {
		c.chunkSize = n
	}
}

// WithLimit fails the accumulation once more than limit bytes arrive.
// Set limit to 0 to disable the limit.
func WithLimit(limit uint64) Option {
	return func(c *config) {
		c.limit = limit
	}
}

// Accumulate reads r to EOF into one contiguous buffer.
//
// Every chunk received emits a downloading event. After the last chunk a
// single extracting event with Percent 100 is emitted. total is the declared
// length, or a value <= 0 when unknown. The context is checked between
// chunks; cancelling a blocked read is the transport's job.
func Accumulate(ctx context.Context, r io.Reader, total int64, progress srctype.ProgressFunc, opts ...Option) ([]byte, error) {
	cfg := config{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chunkSize <= 0 {
		cfg.chunkSize = DefaultChunkSize
	}

	rep := &Reporter{R: r, Total: total, Progress: progress}

	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(min(total, maxPrealloc)))
	}
	chunk := make([]byte, cfg.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := rep.Read(chunk)
		if n > 0 {
			if cfg.limit != 0 && rep.N > cfg.limit {
				return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, cfg.limit)
			}
			buf.Write(chunk[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	done := rep.Event(srctype.PhaseExtracting)
	done.Percent = 100
	if progress != nil {
		progress(done)
	}
	return buf.Bytes(), nil
}
