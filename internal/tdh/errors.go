package tdh

import "errors"

var (
	ErrFieldIndexOutOfBounds = errors.New("tdh: field index out of bounds")
	ErrUnknownSchemaSource   = errors.New("tdh: unknown schema source")
	ErrInvalidGUID           = errors.New("tdh: invalid guid")
)
