package tabfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16le(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestDetectEncoding(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want DetectedEncoding
	}{
		{"empty", nil, DetectedEncoding{Name: EncodingUTF8}},
		{"plain ascii", []byte("Type,Server\n"), DetectedEncoding{Name: EncodingUTF8}},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("Type")...), DetectedEncoding{Name: EncodingUTF8, HasBOM: true}},
		{"utf16le bom", utf16le("Type", true), DetectedEncoding{Name: EncodingUTF16LE, HasBOM: true}},
		{"utf16le bare", utf16le("Type,Server,Name", false), DetectedEncoding{Name: EncodingUTF16LE}},
		{"utf16be bom", []byte{0xFE, 0xFF, 0x00, 'T'}, DetectedEncoding{Name: EncodingUTF16BE, HasBOM: true}},
		{"latin1 bytes", []byte{'c', 'a', 'f', 0xE9}, DetectedEncoding{Name: EncodingCP1252}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectEncoding(tc.data))
		})
	}
}

func TestNormalizeToUTF8(t *testing.T) {
	data := utf16le("Tool,ci,General", true)
	text := NormalizeToUTF8(data, DetectEncoding(data))
	assert.Equal(t, "Tool,ci,General", text)

	data = []byte{'c', 'a', 'f', 0xE9}
	text = NormalizeToUTF8(data, DetectEncoding(data))
	assert.Equal(t, "café", text)

	data = append([]byte{0xEF, 0xBB, 0xBF}, []byte("plain")...)
	text = NormalizeToUTF8(data, DetectEncoding(data))
	assert.Equal(t, "plain", text)
}

func TestReadFileAsUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(path, utf16le("Type,Server\nTool,ci\n", true), 0644))

	text, detected, err := ReadFileAsUTF8(path)
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF16LE, detected.Name)
	assert.True(t, detected.HasBOM)
	assert.Equal(t, "Type,Server\nTool,ci\n", text)
}
