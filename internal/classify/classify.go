// Package classify maps archive member names to text or binary entries.
//
// Classification is a pure function of the member name and, for presumed
// text, whether the content decodes as UTF-8.
package classify

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/meigma/texsrc/internal/srctype"
)

// PrimaryExtension is the extension of TeX source documents.
const PrimaryExtension = ".tex"

// Media types assigned to binary entries.
const (
	MIMEOctetStream = "application/octet-stream"
	MIMEPDF         = "application/pdf"
)

// Display language tags.
const (
	LanguageLaTeX     = "latex"
	LanguageBibTeX    = "bibtex"
	LanguageMarkdown  = "markdown"
	LanguagePlaintext = "plaintext"
)

// textExtensions maps extensions decoded as text to their display language.
var textExtensions = map[string]string{
	// TeX and LaTeX sources
	"tex": LanguageLaTeX, "ltx": LanguageLaTeX, "latex": LanguageLaTeX,
	"sty": LanguageLaTeX, "cls": LanguageLaTeX, "clo": LanguageLaTeX,
	"cfg": LanguageLaTeX, "def": LanguageLaTeX, "fd": LanguageLaTeX,
	"dtx": LanguageLaTeX, "ins": LanguageLaTeX,
	"tikz": LanguageLaTeX, "pgf": LanguageLaTeX,
	"mkii": LanguageLaTeX, "mkiv": LanguageLaTeX,
	// BibTeX and biblatex
	"bib": LanguageBibTeX, "bbl": LanguageBibTeX, "bst": LanguageBibTeX,
	"bbx": LanguageLaTeX, "cbx": LanguageLaTeX, "lbx": LanguageLaTeX,
	// Auxiliary LaTeX output
	"aux": LanguagePlaintext, "toc": LanguagePlaintext, "lof": LanguagePlaintext,
	"lot": LanguagePlaintext, "idx": LanguagePlaintext, "ind": LanguagePlaintext,
	"ilg": LanguagePlaintext, "glo": LanguagePlaintext, "gls": LanguagePlaintext,
	"nlo": LanguagePlaintext, "nls": LanguagePlaintext, "out": LanguagePlaintext,
	"log": LanguagePlaintext, "blg": LanguagePlaintext,
	// Documentation and data
	"txt": LanguagePlaintext, "md": LanguageMarkdown, "xxx": LanguagePlaintext,
	"csv": LanguagePlaintext, "dat": LanguagePlaintext,
	// Figure sources
	"asy": LanguagePlaintext, "mp": LanguagePlaintext, "gnuplot": LanguagePlaintext,
}

// imageExtensions maps image extensions to their media type.
var imageExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"eps":  "application/postscript",
	"ps":   "application/postscript",
}

// Info describes how a member name classifies before its content is read.
type Info struct {
	// Text reports whether the name has a text extension.
	Text bool

	// Image reports whether the name has an image extension.
	Image bool

	// PDF reports whether the name ends in ".pdf".
	PDF bool

	// MIMEType is the media type used if the entry ends up binary.
	MIMEType string

	// Language is the display language for text entries.
	Language string

	// Primary reports whether the name has the primary TeX extension.
	Primary bool
}

// Lookup classifies name by its extension. Matching is case-insensitive.
func Lookup(name string) Info {
	ext := extension(name)
	info := Info{
		MIMEType: MIMEOctetStream,
		Primary:  "."+ext == PrimaryExtension,
	}
	if lang, ok := textExtensions[ext]; ok {
		info.Text = true
		info.Language = lang
		return info
	}
	if mime, ok := imageExtensions[ext]; ok {
		info.Image = true
		info.MIMEType = mime
		return info
	}
	if ext == "pdf" {
		info.PDF = true
		info.MIMEType = MIMEPDF
	}
	return info
}

// Classify builds the entry for an archive member.
//
// Names with a text extension decode as UTF-8 (a leading byte order mark is
// dropped). Content that fails to decode falls back to a binary entry with
// the generic octet-stream type.
func Classify(name string, data []byte) srctype.Entry {
	info := Lookup(name)
	entry := srctype.Entry{
		Name:            name,
		IsPrimarySource: info.Primary,
	}
	if info.Text {
		if text, err := DecodeText(data); err == nil {
			entry.IsText = true
			entry.Content = text
			entry.Language = info.Language
			return entry
		}
	}
	entry.Data = bytes.Clone(data)
	if entry.Data == nil {
		entry.Data = []byte{}
	}
	entry.MIMEType = info.MIMEType
	return entry
}

// Synthetic builds a text entry for a payload that is not an archive.
// Invalid UTF-8 is replaced with U+FFFD rather than rejected.
func Synthetic(name string, data []byte) srctype.Entry {
	info := Lookup(name)
	lang := info.Language
	if lang == "" {
		lang = LanguagePlaintext
	}
	return srctype.Entry{
		Name:            name,
		IsText:          true,
		Content:         decodeLenient(data),
		IsPrimarySource: info.Primary,
		Language:        lang,
	}
}

// DecodeText decodes strict UTF-8, dropping a leading byte order mark.
// It returns an error wrapping srctype.ErrEncoding for invalid input.
func DecodeText(data []byte) (string, error) {
	t := transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", srctype.ErrEncoding, err)
	}
	return string(out), nil
}

func decodeLenient(data []byte) string {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}

// extension returns the lower-cased extension of name without the dot.
func extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}
