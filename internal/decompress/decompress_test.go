package decompress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/texsrc/internal/srctype"
	"github.com/meigma/texsrc/internal/testutil"
)

func TestGzip(t *testing.T) {
	t.Parallel()

	want := testutil.Text("gzip", 4096)
	got, err := Gzip(testutil.Gzip(t, want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGzip_ReusesPooledReaders(t *testing.T) {
	t.Parallel()

	d := New()
	for i := range 5 {
		want := testutil.Text("pool", 100*(i+1))
		got, err := d.Gzip(testutil.Gzip(t, want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestGzip_Failures(t *testing.T) {
	t.Parallel()

	valid := testutil.Gzip(t, []byte("\\documentclass{article}"))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"magic only", []byte{0x1f, 0x8b}},
		{"not gzip", []byte("plain text payload")},
		{"truncated", valid[:len(valid)-6]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Gzip(tt.data)
			require.ErrorIs(t, err, srctype.ErrDecompression)
		})
	}
}

func TestGzip_MaxSize(t *testing.T) {
	t.Parallel()

	data := testutil.Gzip(t, bytes.Repeat([]byte("x"), 2048))

	_, err := New(WithMaxSize(1024)).Gzip(data)
	require.ErrorIs(t, err, srctype.ErrDecompression)

	got, err := New(WithMaxSize(0)).Gzip(data)
	require.NoError(t, err)
	assert.Len(t, got, 2048)
}

func TestZip(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	data := testutil.BuildZip(t,
		testutil.File{Name: "figs/"},
		testutil.File{Name: "figs/fig1.png", Body: png},
		testutil.File{Name: "main.tex", Body: []byte("\\begin{document}\\end{document}")},
	)

	members, err := Zip(data)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "figs/fig1.png", members[0].Name)
	assert.Equal(t, png, members[0].Data)
	assert.Equal(t, "main.tex", members[1].Name)
}

func TestZip_Failures(t *testing.T) {
	t.Parallel()

	_, err := Zip([]byte("definitely not a zip container"))
	require.ErrorIs(t, err, srctype.ErrDecompression)

	_, err = Zip(nil)
	require.ErrorIs(t, err, srctype.ErrDecompression)
}

func TestZip_MaxSize(t *testing.T) {
	t.Parallel()

	data := testutil.BuildZip(t,
		testutil.File{Name: "a.tex", Body: bytes.Repeat([]byte("a"), 600)},
		testutil.File{Name: "b.tex", Body: bytes.Repeat([]byte("b"), 600)},
	)

	_, err := New(WithMaxSize(1000)).Zip(data)
	require.ErrorIs(t, err, srctype.ErrDecompression)

	members, err := New(WithMaxSize(1200)).Zip(data)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}
