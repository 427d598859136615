package srctype

// Kind identifies the container format of a fetched payload.
type Kind uint8

const (
	KindUnknownFallback Kind = iota
	KindGzipWrappedTar
	KindGzipWrappedSingleFile
	KindPlainTar
	KindPlainText
	KindZipContainer
)

// String returns the human-readable name of the container format.
func (k Kind) String() string {
	switch k {
	case KindUnknownFallback:
		return "unknown"
	case KindGzipWrappedTar:
		return "tar.gz"
	case KindGzipWrappedSingleFile:
		return "gzip"
	case KindPlainTar:
		return "tar"
	case KindPlainText:
		return "text"
	case KindZipContainer:
		return "zip"
	default:
		return "invalid"
	}
}

// IsSingleFile reports whether payloads of this kind decode to exactly one
// synthetic entry named after the document identifier.
func (k Kind) IsSingleFile() bool {
	switch k {
	case KindGzipWrappedSingleFile, KindPlainText, KindUnknownFallback:
		return true
	default:
		return false
	}
}
