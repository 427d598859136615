// Package tarfile decodes legacy tar streams held entirely in memory.
//
// The decoder is a pure scan over an explicit cursor: each call to [Next]
// parses the 512-byte header block at an offset and returns the offset of the
// following header. It never fails. Malformed size fields read as zero, short
// trailing data is truncated, and non-regular entries are skipped.
package tarfile

import (
	"bytes"
	"iter"
	"strconv"
	"strings"
)

// BlockSize is the size of a tar header or content block.
const BlockSize = 512

// Header field layout.
const (
	nameOff     = 0
	nameLen     = 100
	sizeOff     = 124
	sizeLen     = 12
	typeflagOff = 156
	magicOff    = 257
	prefixOff   = 345
	prefixLen   = 155
)

const magic = "ustar"

// Record is a regular file extracted from a tar stream.
// Data aliases the scanned buffer.
type Record struct {
	Name string
	Data []byte
}

// Step is the outcome of parsing one header block.
type Step struct {
	// Record holds the regular file when Emit is true.
	Record Record

	// Emit reports whether the header described a non-empty regular file.
	Emit bool

	// Next is the offset of the following header block.
	Next int
}

// Next parses the header block at off.
//
// It returns false when fewer than BlockSize bytes remain or the header name
// is empty. The first empty name ends the archive; a second zero block is not
// required.
func Next(buf []byte, off int) (Step, bool) {
	if off < 0 || len(buf)-off < BlockSize {
		return Step{}, false
	}
	block := buf[off : off+BlockSize]

	name := headerName(block)
	if name == "" {
		return Step{}, false
	}
	size := headerSize(block)
	typeflag := block[typeflagOff]

	start := off + BlockSize
	step := Step{Next: advance(start, size, len(buf))}
	if isRegular(typeflag) && size > 0 {
		end := start + int(min(size, int64(len(buf)-start)))
		step.Emit = true
		step.Record = Record{Name: name, Data: buf[start:end]}
	}
	return step, true
}

// All returns an iterator over the regular files in buf, in archive order.
func All(buf []byte) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for off := 0; ; {
			step, ok := Next(buf, off)
			if !ok {
				return
			}
			if step.Emit && !yield(step.Record) {
				return
			}
			off = step.Next
		}
	}
}

// Decode returns every regular file in buf, in archive order.
func Decode(buf []byte) []Record {
	var records []Record
	for rec := range All(buf) {
		records = append(records, rec)
	}
	return records
}

// HasMagic reports whether buf carries the ustar signature at offset 257.
// Buffers shorter than 263 bytes never match.
func HasMagic(buf []byte) bool {
	if len(buf) < magicOff+len(magic)+1 {
		return false
	}
	return string(buf[magicOff:magicOff+len(magic)]) == magic
}

// advance returns the offset after a header at start-BlockSize with size
// content bytes, saturating at limit.
func advance(start int, size int64, limit int) int {
	blocks := (size + BlockSize - 1) / BlockSize
	if blocks > int64(limit-start)/BlockSize+1 {
		return limit
	}
	return start + int(blocks)*BlockSize
}

func isRegular(typeflag byte) bool {
	return typeflag == 0 || typeflag == '0'
}

// headerName decodes the name field, joining the ustar prefix when present.
func headerName(block []byte) string {
	name := cstring(block[nameOff : nameOff+nameLen])
	if name == "" || !HasMagic(block) {
		return name
	}
	if prefix := cstring(block[prefixOff : prefixOff+prefixLen]); prefix != "" {
		return strings.TrimSuffix(prefix, "/") + "/" + name
	}
	return name
}

// headerSize parses the octal size field. Unparseable values read as zero.
func headerSize(block []byte) int64 {
	field := strings.Trim(string(block[sizeOff:sizeOff+sizeLen]), " \x00")
	size, err := strconv.ParseInt(field, 8, 64)
	if err != nil || size < 0 {
		return 0
	}
	return size
}

// cstring returns the NUL-terminated text in b with surrounding whitespace removed.
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}
