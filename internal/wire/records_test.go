package wire

import (
	"errors"
	"math"
	"testing"
)

func TestRecordsYieldsEachRecordInOrder(t *testing.T) {
	buf := make([]byte, 0, 26)
	for i := byte(0); i < 3; i++ {
		for j := 0; j < 8; j++ {
			buf = append(buf, i)
		}
	}
	buf = append(buf, 0xff, 0xff) // trailing bytes past the array

	seq, err := Records(buf, 0, 8, 3)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	var n int
	for rec := range seq {
		if len(rec) != 8 {
			t.Fatalf("record %d has %d bytes, want 8", n, len(rec))
		}
		for _, b := range rec {
			if b != byte(n) {
				t.Fatalf("record %d = %x", n, rec)
			}
		}
		n++
	}
	if n != 3 {
		t.Fatalf("yielded %d records, want 3", n)
	}
}

func TestRecordsRespectsOffset(t *testing.T) {
	buf := []byte{0xaa, 0xaa, 0xaa, 0xaa, 1, 2, 3, 4}

	seq, err := Records(buf, 4, 2, 2)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	var got []byte
	for rec := range seq {
		got = append(got, rec...)
	}
	want := []byte{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %x, want %x", got, want)
		}
	}
}

func TestRecordsCountPastEndYieldsNothing(t *testing.T) {
	buf := make([]byte, 4*16) // room for exactly 4 records

	seq, err := Records(buf, 0, 16, 5)
	if !errors.Is(err, ErrArrayOutOfBounds) {
		t.Fatalf("err = %v, want ErrArrayOutOfBounds", err)
	}
	if seq != nil {
		t.Fatal("sequence returned alongside error")
	}
}

func TestRecordsHugeCountDoesNotWrap(t *testing.T) {
	buf := make([]byte, 112)

	_, err := Records(buf, 0, 112, math.MaxUint32)
	if !errors.Is(err, ErrArrayOutOfBounds) {
		t.Fatalf("err = %v, want ErrArrayOutOfBounds", err)
	}
}

func TestRecordsZeroCount(t *testing.T) {
	seq, err := Records(make([]byte, 8), 8, 24, 0)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	for range seq {
		t.Fatal("yielded a record for count 0")
	}
}

func TestRecordsStopsWhenYieldReturnsFalse(t *testing.T) {
	seq, err := Records(make([]byte, 40), 0, 8, 5)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	var n int
	seq(func([]byte) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("yielded %d records after stop, want 2", n)
	}
}

func TestRecordSlicesExactSpan(t *testing.T) {
	buf := []byte{0, 1, 2, 3, 4, 5, 6, 7}

	rec, err := Record(buf, 2, 4)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(rec) != 4 || rec[0] != 2 || rec[3] != 5 {
		t.Fatalf("record = %x", rec)
	}
}

func TestRecordOutOfBounds(t *testing.T) {
	buf := make([]byte, 10)

	for _, tc := range []struct {
		name         string
		offset, size int
	}{
		{"past end", 4, 8},
		{"offset past end", 11, 0},
		{"negative offset", -1, 4},
		{"negative size", 0, -4},
	} {
		if _, err := Record(buf, tc.offset, tc.size); !errors.Is(err, ErrArrayOutOfBounds) {
			t.Fatalf("%s: err = %v, want ErrArrayOutOfBounds", tc.name, err)
		}
	}
}
