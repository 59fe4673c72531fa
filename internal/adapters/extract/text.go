package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText decodes plain text: UTF-8 or BOM-marked UTF-16 first, then
// Windows-1252 for legacy files that are not valid UTF-8. NUL bytes mean the
// file is binary and cannot be read as text.
func decodeText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	var (
		out []byte
		err error
	)
	switch {
	case bytes.HasPrefix(data, bomUTF8),
		bytes.HasPrefix(data, bomUTF16LE),
		bytes.HasPrefix(data, bomUTF16BE):
		out, _, err = transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	case utf8.Valid(data):
		out = data
	default:
		out, err = charmap.Windows1252.NewDecoder().Bytes(data)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return "", fmt.Errorf("%w: binary content in text document", ErrDecode)
	}
	return string(out), nil
}
