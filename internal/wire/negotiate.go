package wire

import "fmt"

// QueryFunc is one sized query against an external metadata source. The
// callee writes the required byte size through size and, when buf is
// large enough, fills buf. The outcome is reported as a Status.
type QueryFunc func(buf []byte, size *uint32) Status

// QueryError describes a failed negotiation phase. It wraps
// ErrSizeQueryFailed or ErrFillFailed and carries the raw status code
// the source reported.
type QueryError struct {
	Op     string
	Phase  int // 1 = size query, 2 = fill
	Status Status
	err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%v: op=%s phase=%d status=%v", e.err, e.Op, e.Phase, e.Status)
}

func (e *QueryError) Unwrap() error { return e.err }

// Negotiate runs the two-phase size protocol against query.
//
// Phase one passes a nil buffer; the source must answer
// StatusInsufficientBuffer and report a nonzero required size. Any other
// status, success included, fails with ErrSizeQueryFailed. Phase two
// allocates exactly the reported size and queries again; anything but
// StatusSuccess fails with ErrFillFailed. The returned buffer is owned
// by the caller.
func Negotiate(op string, query QueryFunc) ([]byte, error) {
	var size uint32
	if st := query(nil, &size); st != StatusInsufficientBuffer {
		return nil, &QueryError{Op: op, Phase: 1, Status: st, err: ErrSizeQueryFailed}
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: op=%s reported zero size", ErrSizeQueryFailed, op)
	}
	buf := make([]byte, size)
	if st := query(buf, &size); st != StatusSuccess {
		return nil, &QueryError{Op: op, Phase: 2, Status: st, err: ErrFillFailed}
	}
	return buf, nil
}
