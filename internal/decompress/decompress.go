// Package decompress provides the gzip and zip primitives used to unwrap
// fetched source payloads.
//
// Both primitives operate on complete in-memory buffers and either return the
// inflated bytes or fail with an error wrapping srctype.ErrDecompression.
package decompress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/meigma/texsrc/internal/srctype"
)

// DefaultMaxSize is the default limit on inflated output (256MB).
const DefaultMaxSize = 256 << 20

// Member is a regular file read from a zip container.
type Member struct {
	Name string
	Data []byte
}

// Decompressor inflates gzip streams and zip containers.
// It is safe for concurrent use.
type Decompressor struct {
	pool    *sync.Pool
	maxSize uint64
}

// Option configures a Decompressor.
type Option func(*Decompressor)

// WithMaxSize limits the total inflated size of a single payload.
// Set limit to 0 to disable the limit.
func WithMaxSize(limit uint64) Option {
	return func(d *Decompressor) {
		d.maxSize = limit
	}
}

// New creates a Decompressor with pooled gzip readers.
func New(opts ...Option) *Decompressor {
	d := &Decompressor{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.pool = &sync.Pool{}
	return d
}

// Gzip inflates a gzip stream. Concatenated members are read as one stream.
func (d *Decompressor) Gzip(data []byte) ([]byte, error) {
	zr, release, err := d.getReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", srctype.ErrDecompression, err)
	}
	defer release()

	out, err := d.readAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %w", srctype.ErrDecompression, err)
	}
	return out, nil
}

// Zip reads every regular file from a zip container in directory order.
// Directory entries are skipped. Any unreadable member fails the whole decode.
func (d *Decompressor) Zip(data []byte) ([]Member, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %w", srctype.ErrDecompression, err)
	}

	var total uint64
	members := make([]Member, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if d.maxSize != 0 && f.UncompressedSize64 > d.maxSize-min(total, d.maxSize) {
			return nil, fmt.Errorf("%w: zip: %s: exceeds size limit", srctype.ErrDecompression, f.Name)
		}
		content, err := d.readMember(f)
		if err != nil {
			return nil, fmt.Errorf("%w: zip: %s: %w", srctype.ErrDecompression, f.Name, err)
		}
		total += uint64(len(content))
		members = append(members, Member{Name: f.Name, Data: content})
	}
	return members, nil
}

func (d *Decompressor) readMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return d.readAll(rc)
}

// readAll reads r to EOF, enforcing the size limit.
func (d *Decompressor) readAll(r io.Reader) ([]byte, error) {
	if d.maxSize == 0 {
		return io.ReadAll(r)
	}
	out, err := io.ReadAll(io.LimitReader(r, int64(min(d.maxSize, 1<<62))+1)) //nolint:gosec // bounded above
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > d.maxSize {
		return nil, fmt.Errorf("inflated size exceeds limit of %d bytes", d.maxSize)
	}
	return out, nil
}

// getReader returns a gzip reader positioned at the start of r.
// The caller must call the returned release function when done.
// If an error is returned, no release function needs to be called.
func (d *Decompressor) getReader(r io.Reader) (*gzip.Reader, func(), error) {
	if value, ok := d.pool.Get().(*gzip.Reader); ok {
		if err := value.Reset(r); err != nil {
			// Reset failed on a bad header; the reader can still be reused.
			d.pool.Put(value)
			return nil, nil, err
		}
		return value, func() { d.pool.Put(value) }, nil
	}

	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, nil, err
	}
	return zr, func() { d.pool.Put(zr) }, nil
}

var std = New()

// Gzip inflates data using a shared default Decompressor.
func Gzip(data []byte) ([]byte, error) {
	return std.Gzip(data)
}

// Zip reads a zip container using a shared default Decompressor.
func Zip(data []byte) ([]Member, error) {
	return std.Zip(data)
}
