package wire

import "errors"

var (
	ErrSizeQueryFailed         = errors.New("wire: size query failed")
	ErrFillFailed              = errors.New("wire: buffer fill failed")
	ErrArrayOutOfBounds        = errors.New("wire: record array out of bounds")
	ErrStringOffsetOutOfBounds = errors.New("wire: string offset out of bounds")
)
