// Package sniff determines the container format of a fetched payload.
//
// Detection inspects magic numbers first and the declared media type second,
// so identical bytes and media type always select the same [srctype.Kind].
package sniff

import (
	"bytes"
	"log/slog"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/meigma/texsrc/internal/decompress"
	"github.com/meigma/texsrc/internal/srctype"
	"github.com/meigma/texsrc/internal/tarfile"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decompressor is the decompression primitive consulted while sniffing.
// Either method may fail; failures select a fallback kind.
type Decompressor interface {
	Gzip(data []byte) ([]byte, error)
	Zip(data []byte) ([]decompress.Member, error)
}

// Result is the outcome of sniffing a payload.
type Result struct {
	// Kind is the detected container format.
	Kind srctype.Kind

	// Data is the buffer to hand to the decoder for Kind: the inflated
	// stream for gzip kinds, the original payload otherwise.
	Data []byte

	// Members holds the decoded files for KindZipContainer.
	Members []decompress.Member

	// Detected is the content type guessed from the bytes of an
	// unrecognized payload. Empty for other kinds.
	Detected string

	// Err records an absorbed decompression failure, if any.
	Err error
}

// Sniffer classifies payloads.
type Sniffer struct {
	dec    Decompressor
	logger *slog.Logger
}

// Option configures a Sniffer.
type Option func(*Sniffer)

// WithDecompressor sets the decompression primitive.
func WithDecompressor(d Decompressor) Option {
	return func(s *Sniffer) {
		s.dec = d
	}
}

// WithLogger sets the logger for sniff decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sniffer) {
		s.logger = logger
	}
}

// New creates a Sniffer.
func New(opts ...Option) *Sniffer {
	s := &Sniffer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.dec == nil {
		s.dec = decompress.New()
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Sniffer) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Sniff classifies data using its magic numbers and the declared media type.
//
// The checks run in a fixed order and the first match wins:
//  1. gzip magic: inflate, then split on the tar signature
//  2. tar media type
//  3. text or TeX media type
//  4. tar signature, then a zip container, else unknown
//
// A failed inflate never aborts: the original bytes fall back to
// KindUnknownFallback.
func (s *Sniffer) Sniff(data []byte, mediaType string) Result {
	res := s.sniff(data, mediaType)
	s.log().Debug("sniffed payload",
		"kind", res.Kind.String(),
		"bytes", len(data),
		"media_type", mediaType,
	)
	return res
}

func (s *Sniffer) sniff(data []byte, mediaType string) Result {
	if IsGzip(data) {
		inflated, err := s.dec.Gzip(data)
		if err != nil {
			s.log().Debug("gzip payload did not inflate, using raw bytes", "error", err)
			return s.fallback(data, err)
		}
		if IsTar(inflated) {
			return Result{Kind: srctype.KindGzipWrappedTar, Data: inflated}
		}
		return Result{Kind: srctype.KindGzipWrappedSingleFile, Data: inflated}
	}

	if IsTarMediaType(mediaType) {
		return Result{Kind: srctype.KindPlainTar, Data: data}
	}
	if IsTextMediaType(mediaType) {
		return Result{Kind: srctype.KindPlainText, Data: data}
	}

	if IsTar(data) {
		return Result{Kind: srctype.KindPlainTar, Data: data}
	}
	members, err := s.dec.Zip(data)
	if err != nil {
		return s.fallback(data, err)
	}
	return Result{Kind: srctype.KindZipContainer, Data: data, Members: members}
}

func (s *Sniffer) fallback(data []byte, err error) Result {
	return Result{
		Kind:     srctype.KindUnknownFallback,
		Data:     data,
		Detected: mimetype.Detect(data).String(),
		Err:      err,
	}
}

var std = New()

// Sniff classifies data with the default decompressor.
func Sniff(data []byte, mediaType string) Result {
	return std.Sniff(data, mediaType)
}

// IsGzip reports whether data starts with the gzip magic number.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// IsTar reports whether data carries the ustar signature.
// Buffers shorter than 263 bytes never match.
func IsTar(data []byte) bool {
	return tarfile.HasMagic(data)
}

// IsTarMediaType reports whether mediaType declares a tar stream, such as
// application/x-eprint-tar or application/x-tar.
func IsTarMediaType(mediaType string) bool {
	_, sub := splitMediaType(mediaType)
	switch sub {
	case "tar", "x-tar", "x-gtar", "x-ustar":
		return true
	}
	return strings.HasSuffix(sub, "-tar") || strings.HasSuffix(sub, "+tar")
}

// IsTextMediaType reports whether mediaType declares text or TeX source.
func IsTextMediaType(mediaType string) bool {
	typ, sub := splitMediaType(mediaType)
	if typ == "text" {
		return true
	}
	switch sub {
	case "x-eprint", "x-tex", "x-latex", "x-tex-source":
		return true
	}
	return false
}

// splitMediaType returns the lower-cased type and subtype of a media type,
// ignoring parameters. Malformed values yield empty strings.
func splitMediaType(v string) (typ, sub string) {
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		mt, _, _ = strings.Cut(strings.ToLower(strings.TrimSpace(v)), ";")
		mt = strings.TrimSpace(mt)
	}
	typ, sub, ok := strings.Cut(mt, "/")
	if !ok {
		return "", ""
	}
	return typ, sub
}
