package observability

import (
	"time"

	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/wire"
)

// InstrumentSource wraps src so every raw query call is counted and
// timed under its operation label. One negotiation shows up as two
// calls, matching the underlying protocol.
func InstrumentSource(src tdh.Source) tdh.Source {
	return instrumentedSource{src: src}
}

type instrumentedSource struct {
	src tdh.Source
}

func (s instrumentedSource) EnumerateProviders(buf []byte, size *uint32) wire.Status {
	start := time.Now()
	st := s.src.EnumerateProviders(buf, size)
	RecordSourceQuery(tdh.OpEnumerateProviders, uint32(st), time.Since(start))
	return st
}

func (s instrumentedSource) EnumerateEvents(providerGUID string, buf []byte, size *uint32) wire.Status {
	start := time.Now()
	st := s.src.EnumerateEvents(providerGUID, buf, size)
	RecordSourceQuery(tdh.OpEnumerateEvents, uint32(st), time.Since(start))
	return st
}

func (s instrumentedSource) EventDetail(providerGUID string, desc tdh.EventDescriptor, buf []byte, size *uint32) wire.Status {
	start := time.Now()
	st := s.src.EventDetail(providerGUID, desc, buf, size)
	RecordSourceQuery(tdh.OpEventDetail, uint32(st), time.Since(start))
	return st
}
