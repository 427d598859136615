package srctype

import "errors"

// Sentinel errors for source archive operations.
var (
	// ErrFetch is returned when the payload could not be retrieved.
	ErrFetch = errors.New("texsrc: fetch failed")

	// ErrInvalidID is returned when a document identifier is empty.
	ErrInvalidID = errors.New("texsrc: invalid document identifier")

	// ErrDecompression is returned when a gzip or zip payload cannot be decoded.
	// It never escapes a decode; callers fall back to raw text.
	ErrDecompression = errors.New("texsrc: decompression failed")

	// ErrEncoding is returned when presumed text is not valid UTF-8.
	// It never escapes a decode; the entry is reclassified as binary.
	ErrEncoding = errors.New("texsrc: invalid text encoding")
)
