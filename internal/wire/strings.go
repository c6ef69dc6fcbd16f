package wire

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// ReadWideString reads the null-terminated UTF-16LE string starting at
// offset. An offset past the end of buf fails with
// ErrStringOffsetOutOfBounds; offset == len(buf) reads an empty string.
// The scan is bounded by the buffer end: without a terminator the text
// runs to the last whole code unit, and a trailing odd byte is ignored.
// Unpaired surrogates decode to the replacement character.
func ReadWideString(buf []byte, offset int) (string, error) {
	if offset < 0 || offset > len(buf) {
		return "", fmt.Errorf("%w: offset %d in %d-byte buffer",
			ErrStringOffsetOutOfBounds, offset, len(buf))
	}
	raw := buf[offset:]
	limit := len(raw) &^ 1
	n := limit
	for i := 0; i < limit; i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			n = i
			break
		}
	}
	if n == 0 {
		return "", nil
	}
	decoded, err := utf16LE.NewDecoder().Bytes(raw[:n])
	if err != nil {
		return "", fmt.Errorf("wire: decode utf-16 at offset %d: %w", offset, err)
	}
	return string(decoded), nil
}
