package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestNegotiateFillsReportedSize(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef, 1, 2, 3, 4}
	calls := 0
	query := func(buf []byte, size *uint32) Status {
		calls++
		if len(buf) < len(want) {
			*size = uint32(len(want))
			return StatusInsufficientBuffer
		}
		copy(buf, want)
		return StatusSuccess
	}

	got, err := Negotiate("enum", query)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("buffer = %x, want %x", got, want)
	}
	if calls != 2 {
		t.Fatalf("query calls = %d, want 2", calls)
	}
}

func TestNegotiateAllocatesExactSize(t *testing.T) {
	var fillLen int
	query := func(buf []byte, size *uint32) Status {
		if buf == nil {
			*size = 24
			return StatusInsufficientBuffer
		}
		fillLen = len(buf)
		return StatusSuccess
	}

	buf, err := Negotiate("enum", query)
	if err != nil {
		t.Fatalf("Negotiate: %v", err)
	}
	if fillLen != 24 || len(buf) != 24 {
		t.Fatalf("fill saw %d bytes, returned %d, want 24", fillLen, len(buf))
	}
}

func TestNegotiatePhaseOneSuccessIsError(t *testing.T) {
	query := func(buf []byte, size *uint32) Status { return StatusSuccess }

	_, err := Negotiate("enum", query)
	if !errors.Is(err, ErrSizeQueryFailed) {
		t.Fatalf("err = %v, want ErrSizeQueryFailed", err)
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("err = %v, want *QueryError", err)
	}
	if qe.Op != "enum" || qe.Phase != 1 || qe.Status != StatusSuccess {
		t.Fatalf("QueryError = %+v", qe)
	}
}

func TestNegotiatePhaseOneFailure(t *testing.T) {
	const accessDenied = Status(5)
	query := func(buf []byte, size *uint32) Status { return accessDenied }

	_, err := Negotiate("enum", query)
	if !errors.Is(err, ErrSizeQueryFailed) {
		t.Fatalf("err = %v, want ErrSizeQueryFailed", err)
	}
	var qe *QueryError
	if !errors.As(err, &qe) || qe.Status != accessDenied {
		t.Fatalf("err = %v, want wrapped status %v", err, accessDenied)
	}
}

func TestNegotiateZeroSizeFailsSizeQuery(t *testing.T) {
	query := func(buf []byte, size *uint32) Status {
		*size = 0
		return StatusInsufficientBuffer
	}

	_, err := Negotiate("enum", query)
	if !errors.Is(err, ErrSizeQueryFailed) {
		t.Fatalf("err = %v, want ErrSizeQueryFailed", err)
	}
}

func TestNegotiatePhaseTwoFailure(t *testing.T) {
	const invalidData = Status(13)
	query := func(buf []byte, size *uint32) Status {
		if buf == nil {
			*size = 32
			return StatusInsufficientBuffer
		}
		return invalidData
	}

	_, err := Negotiate("enum", query)
	if !errors.Is(err, ErrFillFailed) {
		t.Fatalf("err = %v, want ErrFillFailed", err)
	}
	var qe *QueryError
	if !errors.As(err, &qe) {
		t.Fatalf("err = %v, want *QueryError", err)
	}
	if qe.Phase != 2 || qe.Status != invalidData {
		t.Fatalf("QueryError = %+v", qe)
	}
}
