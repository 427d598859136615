package texsrc

import "github.com/meigma/texsrc/internal/srctype"

// FetchError describes a failed payload retrieval. It matches [ErrFetch].
type FetchError = srctype.FetchError

// Errors re-exported from internal/srctype.
var (
	// ErrFetch is returned when the payload could not be retrieved.
	ErrFetch = srctype.ErrFetch

	// ErrInvalidID is returned when a document identifier is empty.
	ErrInvalidID = srctype.ErrInvalidID

	// ErrDecompression identifies an absorbed gzip or zip failure.
	// It is never returned from Fetch or Decode.
	ErrDecompression = srctype.ErrDecompression

	// ErrEncoding identifies an absorbed text decoding failure.
	// It is never returned from Fetch or Decode.
	ErrEncoding = srctype.ErrEncoding
)
