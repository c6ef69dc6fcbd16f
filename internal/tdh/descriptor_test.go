package tdh

import "testing"

func TestEventDescriptorWireLayout(t *testing.T) {
	d := EventDescriptor{
		ID:      0x0201,
		Version: 3,
		Channel: 4,
		Level:   5,
		Opcode:  6,
		Task:    0x0807,
		Keyword: 0x8000000000000010,
	}
	b := d.Bytes()
	want := [16]byte{
		0x01, 0x02, // ID
		3, 4, 5, 6, // Version, Channel, Level, Opcode
		0x07, 0x08, // Task
		0x10, 0, 0, 0, 0, 0, 0, 0x80, // Keyword
	}
	if b != want {
		t.Fatalf("got % x, want % x", b, want)
	}
}

func TestEventDescriptorRoundTrip(t *testing.T) {
	descs := []EventDescriptor{
		{},
		{ID: 1, Version: 0, Keyword: 0x10},
		{ID: 0xffff, Version: 0xff, Channel: 0xff, Level: 0xff, Opcode: 0xff, Task: 0xffff, Keyword: ^uint64(0)},
	}
	for _, d := range descs {
		b := d.Bytes()
		if got := DecodeEventDescriptor(b[:]); got != d {
			t.Fatalf("round trip %+v -> %+v", d, got)
		}
	}
}
