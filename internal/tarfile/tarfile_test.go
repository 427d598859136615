package tarfile

import (
	"archive/tar"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/texsrc/internal/testutil"
)

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 7, 20} {
		t.Run(fmt.Sprintf("%d files", n), func(t *testing.T) {
			t.Parallel()

			files := make([]testutil.File, n)
			for i := range files {
				files[i] = testutil.File{
					Name: fmt.Sprintf("dir%d/file%02d.tex", i%3, i),
					Body: testutil.Text(fmt.Sprint(i), 1+i*173),
				}
			}

			records := Decode(testutil.BuildTar(t, files...))
			require.Len(t, records, n)
			for i, rec := range records {
				assert.Equal(t, files[i].Name, rec.Name)
				assert.Equal(t, files[i].Body, rec.Data)
			}
		})
	}
}

func TestDecode_SkipsNonRegularEntries(t *testing.T) {
	t.Parallel()

	data := testutil.BuildTar(t,
		testutil.File{Name: "figs/", Typeflag: tar.TypeDir},
		testutil.File{Name: "paper.tex", Body: testutil.Text("paper", 50)},
		testutil.File{Name: "link.tex", Typeflag: tar.TypeSymlink},
		testutil.File{Name: "empty.tex", Body: nil},
		testutil.File{Name: "figs/plot.eps", Body: testutil.Text("plot", 1025)},
	)

	records := Decode(data)
	require.Len(t, records, 2)
	assert.Equal(t, "paper.tex", records[0].Name)
	assert.Equal(t, "figs/plot.eps", records[1].Name)
	assert.Len(t, records[1].Data, 1025)
}

func TestDecode_CountMatchesRegularHeaders(t *testing.T) {
	t.Parallel()

	var files []testutil.File
	want := 0
	for i := range 12 {
		f := testutil.File{Name: fmt.Sprintf("f%d", i), Body: testutil.Text("c", i*40)}
		switch i % 4 {
		case 1:
			f.Typeflag = tar.TypeDir
			f.Name += "/"
		case 2:
			f.Typeflag = tar.TypeSymlink
		default:
			if len(f.Body) > 0 {
				want++
			}
		}
		files = append(files, f)
	}

	assert.Len(t, Decode(testutil.BuildTar(t, files...)), want)
}

func TestDecode_NULTypeflag(t *testing.T) {
	t.Parallel()

	body := []byte("legacy v7 archive entry")
	var buf []byte
	buf = append(buf, testutil.RawTarHeader("old.tex", "00000000027\x00", 0, false)...)
	buf = append(buf, testutil.Pad(append([]byte(nil), body...))...)
	buf = append(buf, make([]byte, 1024)...)

	records := Decode(buf)
	require.Len(t, records, 1)
	assert.Equal(t, "old.tex", records[0].Name)
	assert.Equal(t, body, records[0].Data)
}

func TestDecode_BadOctalSizeResumesAtNextBlock(t *testing.T) {
	t.Parallel()

	body := []byte("after the broken header")
	var buf []byte
	buf = append(buf, testutil.RawTarHeader("broken.tex", "12z4\x00", '0', true)...)
	buf = append(buf, testutil.RawTarHeader("good.tex", fmt.Sprintf("%011o\x00", len(body)), '0', true)...)
	buf = append(buf, testutil.Pad(append([]byte(nil), body...))...)

	step, ok := Next(buf, 0)
	require.True(t, ok)
	assert.False(t, step.Emit, "zero-size entry is not emitted")
	assert.Equal(t, BlockSize, step.Next)

	records := Decode(buf)
	require.Len(t, records, 1)
	assert.Equal(t, "good.tex", records[0].Name)
	assert.Equal(t, body, records[0].Data)
}

func TestDecode_TruncatedContent(t *testing.T) {
	t.Parallel()

	buf := testutil.RawTarHeader("cut.tex", fmt.Sprintf("%011o\x00", 4096), '0', true)
	buf = append(buf, []byte("only a few bytes")...)

	records := Decode(buf)
	require.Len(t, records, 1)
	assert.Equal(t, []byte("only a few bytes"), records[0].Data)
}

func TestDecode_HugeSizeSaturates(t *testing.T) {
	t.Parallel()

	buf := testutil.RawTarHeader("huge.bin", "77777777777\x00", '0', true)
	buf = append(buf, make([]byte, 1024)...)

	step, ok := Next(buf, 0)
	require.True(t, ok)
	assert.Equal(t, len(buf), step.Next)

	_, ok = Next(buf, step.Next)
	assert.False(t, ok)
}

func TestDecode_StopsAtFirstEmptyName(t *testing.T) {
	t.Parallel()

	first := testutil.BuildTar(t, testutil.File{Name: "a.tex", Body: []byte("a")})
	// BuildTar ends with two zero blocks; anything after is ignored.
	data := append(bytes.Clone(first), testutil.BuildTar(t, testutil.File{Name: "b.tex", Body: []byte("b")})...)

	records := Decode(data)
	require.Len(t, records, 1)
	assert.Equal(t, "a.tex", records[0].Name)
}

func TestDecode_Degenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"short", []byte("not even one block")},
		{"zero block", make([]byte, BlockSize)},
		{"whitespace name", testutil.RawTarHeader("   ", "00000000001\x00", '0', true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, Decode(tt.data))
		})
	}
}

func TestHeaderName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		block  []byte
		prefix string
		want   string
	}{
		{"plain", testutil.RawTarHeader("main.tex", "0", '0', false), "", "main.tex"},
		{"padded", testutil.RawTarHeader("  main.tex \x00\x00", "0", '0', false), "", "main.tex"},
		{"ustar prefix", testutil.RawTarHeader("main.tex", "0", '0', true), "src/paper", "src/paper/main.tex"},
		{"prefix ignored without magic", testutil.RawTarHeader("main.tex", "0", '0', false), "src", "main.tex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			block := bytes.Clone(tt.block)
			copy(block[prefixOff:prefixOff+prefixLen], tt.prefix)
			assert.Equal(t, tt.want, headerName(block))
		})
	}
}

func TestHeaderSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		want  int64
	}{
		{"00000000144\x00", 100},
		{"144 \x00", 100},
		{"", 0},
		{"9", 0},
		{"-12", 0},
		{"\x80\x00\x00\x00\x00\x00\x00\x00\x00\x00\x04\x00", 0},
	}
	for _, tt := range tests {
		t.Run(strings.ToValidUTF8(tt.field, "?"), func(t *testing.T) {
			t.Parallel()

			block := testutil.RawTarHeader("x", tt.field, '0', false)
			assert.Equal(t, tt.want, headerSize(block))
		})
	}
}

func TestHasMagic(t *testing.T) {
	t.Parallel()

	tarData := testutil.BuildTar(t, testutil.File{Name: "a.tex", Body: []byte("a")})
	assert.True(t, HasMagic(tarData))
	assert.True(t, HasMagic(tarData[:263]))
	assert.False(t, HasMagic(tarData[:262]))
	assert.False(t, HasMagic(make([]byte, 600)))
}

func TestAll_StopsEarly(t *testing.T) {
	t.Parallel()

	data := testutil.BuildTar(t,
		testutil.File{Name: "a", Body: []byte("1")},
		testutil.File{Name: "b", Body: []byte("2")},
		testutil.File{Name: "c", Body: []byte("3")},
	)

	var names []string
	for rec := range All(data) {
		names = append(names, rec.Name)
		if len(names) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, names)
}
