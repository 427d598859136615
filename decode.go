package texsrc

import (
	"log/slog"

	"github.com/meigma/texsrc/internal/classify"
	"github.com/meigma/texsrc/internal/decompress"
	"github.com/meigma/texsrc/internal/order"
	"github.com/meigma/texsrc/internal/sniff"
	"github.com/meigma/texsrc/internal/tarfile"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	logger      *slog.Logger
	maxInflated uint64
}

// DecodeWithLogger sets the logger for sniff decisions and absorbed failures.
func DecodeWithLogger(logger *slog.Logger) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.logger = logger
	}
}

// DecodeWithMaxInflatedSize limits the inflated size of gzip and zip payloads.
// Payloads that exceed it are treated as undecodable and fall back to raw text.
// Set limit to 0 to disable the limit.
func DecodeWithMaxInflatedSize(limit uint64) DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.maxInflated = limit
	}
}

// Decode sniffs, decodes, classifies, and orders payload.
//
// The id names the single synthetic entry produced when the payload is not
// an archive (see [SyntheticName]). Decode never fails: undecodable
// containers fall back to raw text, and a container that yields no files
// falls back to a synthetic entry holding its bytes.
func Decode(payload Payload, id string, opts ...DecodeOption) *Archive {
	cfg := decodeConfig{maxInflated: decompress.DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sniffer := sniff.New(
		sniff.WithDecompressor(decompress.New(decompress.WithMaxSize(cfg.maxInflated))),
		sniff.WithLogger(log),
	)
	res := sniffer.Sniff(payload.Data, payload.MediaType)
	if res.Err != nil {
		log.Debug("container did not decode, using raw text",
			"id", id,
			"detected", res.Detected,
			"error", res.Err,
		)
	}

	var entries []Entry
	switch res.Kind {
	case KindGzipWrappedTar, KindPlainTar:
		entries = classifyTar(log, res.Data)
	case KindZipContainer:
		entries = classifyZip(log, res.Members)
	case KindGzipWrappedSingleFile, KindPlainText, KindUnknownFallback:
		entries = []Entry{classify.Synthetic(SyntheticName(id), res.Data)}
	}
	if len(entries) == 0 && len(res.Data) > 0 {
		log.Debug("container held no files, using raw text", "id", id, "kind", res.Kind.String())
		entries = []Entry{classify.Synthetic(SyntheticName(id), res.Data)}
	}
	order.Sort(entries)

	archive := newArchive(res.Kind, payload, entries)
	log.Debug("decoded archive",
		"id", id,
		"kind", res.Kind.String(),
		"entries", len(entries),
		"digest", archive.Digest().String(),
	)
	return archive
}

func classifyTar(log *slog.Logger, data []byte) []Entry {
	var entries []Entry
	for rec := range tarfile.All(data) {
		entries = append(entries, classifyOne(log, rec.Name, rec.Data))
	}
	return entries
}

func classifyZip(log *slog.Logger, members []decompress.Member) []Entry {
	entries := make([]Entry, 0, len(members))
	for _, m := range members {
		if m.Name == "" {
			continue
		}
		entries = append(entries, classifyOne(log, m.Name, m.Data))
	}
	return entries
}

func classifyOne(log *slog.Logger, name string, data []byte) Entry {
	entry := classify.Classify(name, data)
	if entry.IsBinary() && classify.Lookup(name).Text {
		log.Debug("text entry is not valid UTF-8, keeping as binary", "name", name)
	}
	return entry
}
