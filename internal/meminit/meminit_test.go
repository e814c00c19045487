package meminit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		input  string
		want   []uint64
	}{
		{
			name:   "hex words",
			format: Hex,
			input:  "00 01 0a\nFF\n",
			want:   []uint64{0x00, 0x01, 0x0a, 0xff},
		},
		{
			name:   "comments and separators",
			format: Hex,
			input:  "// header\ndead_beef /* inline */ 1\n/* multi\nline */ 2 // tail\n",
			want:   []uint64{0xdeadbeef, 1, 2},
		},
		{
			name:   "address jumps leave holes",
			format: Hex,
			input:  "1\n@4\n5 6\n@2 3",
			want:   []uint64{1, 0, 3, 0, 5, 6},
		},
		{
			name:   "binary",
			format: Bin,
			input:  "1010_0101 1\n",
			want:   []uint64{0xa5, 1},
		},
		{
			name:   "empty",
			format: Hex,
			input:  "  // nothing\n",
			want:   nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tc.input), tc.format)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader("12\n1g\n"), Hex)
	assert.ErrorContains(t, err, `line 2: bad hex word "1g"`)

	_, err = Parse(strings.NewReader("102"), Bin)
	assert.ErrorContains(t, err, `bad bin word "102"`)

	_, err = Parse(strings.NewReader("1_0000_0000_0000_0000"), Hex)
	assert.ErrorContains(t, err, "value out of range")

	_, err = Parse(strings.NewReader("@zz 1"), Hex)
	assert.ErrorContains(t, err, `bad address "@zz"`)

	_, err = Parse(strings.NewReader("@100000 1"), Hex)
	assert.ErrorContains(t, err, "beyond the 1048576 word limit")

	_, err = Parse(strings.NewReader("1 /* open"), Hex)
	assert.ErrorContains(t, err, "unterminated")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rom.hex")
	require.NoError(t, os.WriteFile(path, []byte("01\n02\n"), 0o644))

	got, err := ReadFile(path, Hex)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, got)

	_, err = ReadFile(filepath.Join(dir, "missing.hex"), Hex)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("HEX")
	require.NoError(t, err)
	assert.Equal(t, Hex, f)
	_, err = ParseFormat("mif")
	assert.Error(t, err)
}
