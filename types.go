package texsrc

import "github.com/meigma/texsrc/internal/srctype"

// --- Re-exports from internal/srctype ---

// Entry represents a single file decoded from a source archive.
type Entry = srctype.Entry

// Kind identifies the container format of a fetched payload.
type Kind = srctype.Kind

// Payload is a fetched byte sequence with its declared length and media type.
type Payload = srctype.Payload

// Container formats.
const (
	KindUnknownFallback       = srctype.KindUnknownFallback
	KindGzipWrappedTar        = srctype.KindGzipWrappedTar
	KindGzipWrappedSingleFile = srctype.KindGzipWrappedSingleFile
	KindPlainTar              = srctype.KindPlainTar
	KindPlainText             = srctype.KindPlainText
	KindZipContainer          = srctype.KindZipContainer
)
