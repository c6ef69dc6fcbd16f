package observability

import (
	"testing"

	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/wire"
)

// stubSource answers every call with a fixed status and remembers the
// last arguments it saw.
type stubSource struct {
	status   wire.Status
	lastGUID string
	lastDesc tdh.EventDescriptor
	calls    int
}

func (s *stubSource) EnumerateProviders(buf []byte, size *uint32) wire.Status {
	s.calls++
	*size = 8
	return s.status
}

func (s *stubSource) EnumerateEvents(providerGUID string, buf []byte, size *uint32) wire.Status {
	s.calls++
	s.lastGUID = providerGUID
	*size = 8
	return s.status
}

func (s *stubSource) EventDetail(providerGUID string, desc tdh.EventDescriptor, buf []byte, size *uint32) wire.Status {
	s.calls++
	s.lastGUID = providerGUID
	s.lastDesc = desc
	*size = 112
	return s.status
}

func TestInstrumentSourcePassesThrough(t *testing.T) {
	stub := &stubSource{status: wire.StatusInsufficientBuffer}
	src := InstrumentSource(stub)

	var size uint32
	if st := src.EnumerateProviders(nil, &size); st != wire.StatusInsufficientBuffer {
		t.Fatalf("EnumerateProviders status = %v", st)
	}
	if size != 8 {
		t.Fatalf("size not written through: %d", size)
	}

	if st := src.EnumerateEvents("guid-a", nil, &size); st != wire.StatusInsufficientBuffer {
		t.Fatalf("EnumerateEvents status = %v", st)
	}
	if stub.lastGUID != "guid-a" {
		t.Fatalf("guid not passed through: %q", stub.lastGUID)
	}

	desc := tdh.EventDescriptor{ID: 7, Version: 2}
	if st := src.EventDetail("guid-b", desc, nil, &size); st != wire.StatusInsufficientBuffer {
		t.Fatalf("EventDetail status = %v", st)
	}
	if stub.lastGUID != "guid-b" || stub.lastDesc != desc {
		t.Fatalf("detail args not passed through: %q %+v", stub.lastGUID, stub.lastDesc)
	}
	if stub.calls != 3 {
		t.Fatalf("inner source saw %d calls, want 3", stub.calls)
	}
}
