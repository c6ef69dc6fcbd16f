package tdh

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// FormatGUID renders a 16-byte native GUID record in canonical lowercase
// text. The first three groups are stored little-endian, the final eight
// bytes in order.
func FormatGUID(rec []byte) (string, error) {
	if len(rec) != 16 {
		return "", fmt.Errorf("%w: %d-byte record", ErrInvalidGUID, len(rec))
	}
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], binary.LittleEndian.Uint32(rec[0:4]))
	binary.BigEndian.PutUint16(u[4:6], binary.LittleEndian.Uint16(rec[4:6]))
	binary.BigEndian.PutUint16(u[6:8], binary.LittleEndian.Uint16(rec[6:8]))
	copy(u[8:], rec[8:16])
	return u.String(), nil
}

// ParseGUID converts textual form, braced or bare, any case, to the
// native 16-byte mixed-endian layout.
func ParseGUID(s string) ([16]byte, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return [16]byte{}, fmt.Errorf("%w: %q", ErrInvalidGUID, s)
	}
	var g [16]byte
	binary.LittleEndian.PutUint32(g[0:4], binary.BigEndian.Uint32(u[0:4]))
	binary.LittleEndian.PutUint16(g[4:6], binary.BigEndian.Uint16(u[4:6]))
	binary.LittleEndian.PutUint16(g[6:8], binary.BigEndian.Uint16(u[6:8]))
	copy(g[8:], u[8:16])
	return g, nil
}

// NormalizeGUID re-renders any accepted textual form canonically, for
// stable cache and comparison keys.
func NormalizeGUID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidGUID, s)
	}
	return u.String(), nil
}
