package tabfile

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// The table reader accepts UTF-8 (with or without BOM), UTF-16 in
// either byte order, and Windows-1252 as the single-byte legacy
// fallback. Detection is by trial: BOM first, then UTF-8 validity,
// then a UTF-16 null-byte heuristic, then the legacy decode, which
// cannot fail.

type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingUTF16LE Encoding = "utf-16le"
	EncodingUTF16BE Encoding = "utf-16be"
	EncodingCP1252  Encoding = "windows-1252"
)

type DetectedEncoding struct {
	Name   Encoding
	HasBOM bool
}

func DetectEncoding(data []byte) DetectedEncoding {
	if len(data) == 0 {
		return DetectedEncoding{Name: EncodingUTF8}
	}

	if det, ok := detectBOM(data); ok {
		return det
	}

	// BOM-less UTF-16 of ASCII text is byte-valid UTF-8, so the null
	// heuristic has to run first whenever nulls are present at all.
	if bytes.IndexByte(data, 0) >= 0 {
		if det, ok := detectUTF16(data); ok {
			return det
		}
	}

	if utf8.Valid(data) {
		return DetectedEncoding{Name: EncodingUTF8}
	}

	return DetectedEncoding{Name: EncodingCP1252}
}

func detectBOM(data []byte) (DetectedEncoding, bool) {
	if len(data) >= 3 && bytes.Equal(data[:3], []byte{0xEF, 0xBB, 0xBF}) {
		return DetectedEncoding{Name: EncodingUTF8, HasBOM: true}, true
	}
	if len(data) >= 2 {
		if bytes.Equal(data[:2], []byte{0xFF, 0xFE}) {
			return DetectedEncoding{Name: EncodingUTF16LE, HasBOM: true}, true
		}
		if bytes.Equal(data[:2], []byte{0xFE, 0xFF}) {
			return DetectedEncoding{Name: EncodingUTF16BE, HasBOM: true}, true
		}
	}
	return DetectedEncoding{}, false
}

// detectUTF16 looks for the null-byte cadence of BOM-less UTF-16
// holding mostly Latin text.
func detectUTF16(data []byte) (DetectedEncoding, bool) {
	if len(data) < 2 || len(data)%2 != 0 {
		return DetectedEncoding{}, false
	}

	oddNulls, evenNulls := 0, 0
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 {
			evenNulls++
		}
		if data[i+1] == 0 {
			oddNulls++
		}
	}

	pairs := len(data) / 2
	if float64(oddNulls)/float64(pairs) > 0.75 {
		return DetectedEncoding{Name: EncodingUTF16LE}, true
	}
	if float64(evenNulls)/float64(pairs) > 0.75 {
		return DetectedEncoding{Name: EncodingUTF16BE}, true
	}

	return DetectedEncoding{}, false
}

// NormalizeToUTF8 decodes the raw bytes to UTF-8 text. Undecodable
// sequences become replacement runes rather than errors.
func NormalizeToUTF8(data []byte, detected DetectedEncoding) string {
	data = stripBOM(data, detected)

	switch detected.Name {
	case EncodingUTF16LE:
		return decodeWithFallback(data, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder())
	case EncodingUTF16BE:
		return decodeWithFallback(data, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder())
	case EncodingCP1252:
		return decodeWithFallback(data, charmap.Windows1252.NewDecoder())
	default:
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}
}

func stripBOM(data []byte, detected DetectedEncoding) []byte {
	if !detected.HasBOM {
		return data
	}

	switch detected.Name {
	case EncodingUTF8:
		return data[3:]
	case EncodingUTF16LE, EncodingUTF16BE:
		return data[2:]
	}

	return data
}

func decodeWithFallback(data []byte, decoder *encoding.Decoder) string {
	if len(data) == 0 {
		return ""
	}

	reader := transform.NewReader(bytes.NewReader(data), decoder)
	result, err := io.ReadAll(reader)
	if err != nil {
		return string(bytes.ToValidUTF8(data, []byte("�")))
	}

	return string(bytes.ToValidUTF8(result, []byte("�")))
}

// ReadFileAsUTF8 loads a file and normalizes it to UTF-8 text.
func ReadFileAsUTF8(path string) (string, DetectedEncoding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", DetectedEncoding{}, err
	}

	detected := DetectEncoding(data)
	return NormalizeToUTF8(data, detected), detected, nil
}
