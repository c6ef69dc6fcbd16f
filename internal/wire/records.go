package wire

import (
	"fmt"
	"iter"
)

// Record slices one fixed-size record out of buf at offset. The view
// aliases buf; callers copy out anything they keep.
func Record(buf []byte, offset, size int) ([]byte, error) {
	if offset < 0 || size < 0 || uint64(offset)+uint64(size) > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d-byte record at offset %d in %d-byte buffer",
			ErrArrayOutOfBounds, size, offset, len(buf))
	}
	return buf[offset : offset+size], nil
}

// Records validates that count records of size bytes each, starting at
// offset, fit inside buf and returns a sequence yielding each record in
// order. The whole span is checked up front in 64-bit arithmetic, so a
// hostile count cannot wrap; on failure no records are yielded. Yielded
// views alias buf.
func Records(buf []byte, offset, size int, count uint32) (iter.Seq[[]byte], error) {
	if offset < 0 || size <= 0 ||
		uint64(offset)+uint64(size)*uint64(count) > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d records of %d bytes at offset %d in %d-byte buffer",
			ErrArrayOutOfBounds, count, size, offset, len(buf))
	}
	return func(yield func([]byte) bool) {
		for i := 0; i < int(count); i++ {
			start := offset + i*size
			if !yield(buf[start : start+size]) {
				return
			}
		}
	}, nil
}
