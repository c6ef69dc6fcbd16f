package wire

import "fmt"

// Status is the numeric outcome of a single query call against a
// metadata source. The decode layer distinguishes exactly three cases:
// success, insufficient buffer, and everything else.
type Status uint32

const (
	StatusSuccess            Status = 0
	StatusInsufficientBuffer Status = 122
)

// OK reports whether s is StatusSuccess.
func (s Status) OK() bool { return s == StatusSuccess }

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusInsufficientBuffer:
		return "insufficient buffer"
	default:
		return fmt.Sprintf("status %d", uint32(s))
	}
}
