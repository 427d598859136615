package srctype

// Entry represents a single file decoded from a source archive.
//
// Exactly one of Content and Data is populated: Content when IsText is true,
// Data (with MIMEType) otherwise. Entries are not modified after decode and
// may be shared between goroutines without synchronization. Callers must not
// write to Data.
type Entry struct {
	// Name is the slash-separated path relative to the archive root
	// (e.g., "figures/plot.pdf"). Never empty.
	Name string

	// IsText reports whether the entry decoded as text.
	IsText bool

	// Content is the decoded text. Empty for binary entries.
	Content string

	// Data is the raw payload of a binary entry. Nil for text entries.
	Data []byte

	// MIMEType is the media type of a binary entry. Empty for text entries.
	MIMEType string

	// IsPrimarySource reports whether the entry is a TeX source document.
	// Primary sources sort first and are candidates for auto-selection.
	IsPrimarySource bool

	// Language is the display language tag for text entries
	// (e.g., "latex", "bibtex", "plaintext"). Empty for binary entries.
	Language string
}

// IsBinary reports whether the entry holds binary data.
func (e *Entry) IsBinary() bool {
	return !e.IsText
}

// Size returns the entry size in bytes.
func (e *Entry) Size() int {
	if e.IsText {
		return len(e.Content)
	}
	return len(e.Data)
}
