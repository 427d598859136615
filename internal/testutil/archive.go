package testutil

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// File describes a member of a test archive.
type File struct {
	Name string
	Body []byte

	// Typeflag overrides the tar entry type. Zero means a regular file.
	Typeflag byte
}

// BuildTar encodes files as a ustar stream terminated by two zero blocks.
func BuildTar(tb testing.TB, files ...File) []byte {
	tb.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, f := range files {
		typeflag := f.Typeflag
		if typeflag == 0 {
			typeflag = tar.TypeReg
		}
		hdr := &tar.Header{
			Name:     f.Name,
			Mode:     0o644,
			Typeflag: typeflag,
			Format:   tar.FormatUSTAR,
		}
		if typeflag == tar.TypeReg {
			hdr.Size = int64(len(f.Body))
		}
		if typeflag == tar.TypeDir {
			hdr.Mode = 0o755
		}
		if typeflag == tar.TypeSymlink {
			hdr.Linkname = "target"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			tb.Fatalf("write tar header %q: %v", f.Name, err)
		}
		if typeflag == tar.TypeReg {
			if _, err := tw.Write(f.Body); err != nil {
				tb.Fatalf("write tar body %q: %v", f.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		tb.Fatalf("close tar writer: %v", err)
	}
	return buf.Bytes()
}

// RawTarHeader builds a single 512-byte header block with the given raw
// field values. The size field is copied verbatim, allowing malformed values.
// The checksum is left blank.
func RawTarHeader(name, size string, typeflag byte, ustar bool) []byte {
	block := make([]byte, 512)
	copy(block[0:100], name)
	copy(block[100:108], "0000644\x00")
	copy(block[124:136], size)
	block[156] = typeflag
	if ustar {
		copy(block[257:263], "ustar\x00")
		copy(block[263:265], "00")
	}
	return block
}

// Pad appends zero bytes to data up to the next 512-byte boundary.
func Pad(data []byte) []byte {
	if rem := len(data) % 512; rem != 0 {
		data = append(data, make([]byte, 512-rem)...)
	}
	return data
}

// Gzip compresses data as a single gzip member.
func Gzip(tb testing.TB, data []byte) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		tb.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

// BuildZip encodes files as a deflate-compressed zip container.
// Names ending in "/" are written as directories.
func BuildZip(tb testing.TB, files ...File) []byte {
	tb.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			tb.Fatalf("zip create %q: %v", f.Name, err)
		}
		if len(f.Body) == 0 {
			continue
		}
		if _, err := w.Write(f.Body); err != nil {
			tb.Fatalf("zip write %q: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// Text returns n bytes of printable ASCII derived from seed.
func Text(seed string, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = 'a' + (seed[i%len(seed)]+byte(i))%26
	}
	return out
}
