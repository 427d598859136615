// Package testutil provides fixtures for building source payloads in tests.
package testutil

import (
	"io"
	"sync/atomic"
)

// ChunkedReader yields its backing data in fixed-size chunks, mimicking a
// response body that arrives over several reads.
type ChunkedReader struct {
	data  []byte
	chunk int
	off   int
	reads atomic.Int32
}

// NewChunkedReader returns a reader that yields at most chunk bytes per Read.
func NewChunkedReader(data []byte, chunk int) *ChunkedReader {
	if chunk <= 0 {
		chunk = 1
	}
	return &ChunkedReader{data: data, chunk: chunk}
}

// Read implements io.Reader.
func (r *ChunkedReader) Read(p []byte) (int, error) {
	r.reads.Add(1)
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	end := min(r.off+r.chunk, len(r.data), r.off+len(p))
	n := copy(p, r.data[r.off:end])
	r.off += n
	return n, nil
}

// Reads returns the number of Read calls made so far.
func (r *ChunkedReader) Reads() int {
	return int(r.reads.Load())
}

// FailingReader yields data and then fails with err instead of io.EOF.
type FailingReader struct {
	data []byte
	err  error
	off  int
}

// NewFailingReader returns a reader that fails with err after data is consumed.
func NewFailingReader(data []byte, err error) *FailingReader {
	return &FailingReader{data: data, err: err}
}

// Read implements io.Reader.
func (r *FailingReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, r.err
	}
	n := copy(p, r.data[r.off:])
	r.off += n
	return n, nil
}
