// Package tdhtest provides an in-memory metadata source and native
// buffer builders for exercising the decode path without a live tracing
// runtime.
package tdhtest

import (
	"encoding/binary"
	"fmt"
	"sync"
	"unicode/utf16"

	"github.com/danmuck/tdhctl/internal/tdh"
	"github.com/danmuck/tdhctl/internal/wire"
)

// StatusNotFound answers queries for providers or events the source does
// not know, mirroring the native ERROR_NOT_FOUND code.
const StatusNotFound = wire.Status(1168)

// ProviderEntry describes one provider record.
type ProviderEntry struct {
	GUID   string
	Name   string
	Schema uint32 // raw schema source code, not validated here
}

// Property describes one field record. Flags is the raw flag word, so
// callers control exactly which length and count bits are set.
type Property struct {
	Name    string
	InType  uint16
	OutType uint16
	Flags   uint32
	Length  uint16
	Count   uint16
}

// EventInfo describes one event detail buffer.
type EventInfo struct {
	ProviderGUID string // canonical text; the zero GUID when empty
	Descriptor   tdh.EventDescriptor
	EventName    string // written to the name region when nonempty
	TaskName     string // written to the name region when nonempty
	Properties   []Property
}

// BuildProviderEnumeration lays out a provider enumeration buffer:
// 8-byte header, one 24-byte record per entry, then the name region the
// records point into.
func BuildProviderEnumeration(entries []ProviderEntry) []byte {
	buf := make([]byte, 8+24*len(entries))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(entries)))
	for i, e := range entries {
		rec := buf[8+24*i:]
		g := mustGUID(e.GUID)
		copy(rec[0:16], g[:])
		binary.LittleEndian.PutUint32(rec[16:20], e.Schema)
		binary.LittleEndian.PutUint32(rec[20:24], uint32(len(buf)))
		buf = append(buf, wstr(e.Name)...)
	}
	return buf
}

// BuildEventEnumeration lays out an event enumeration buffer: 8-byte
// header then one 16-byte descriptor record per event.
func BuildEventEnumeration(descs []tdh.EventDescriptor) []byte {
	buf := make([]byte, 8+16*len(descs))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(descs)))
	for i, d := range descs {
		b := d.Bytes()
		copy(buf[8+16*i:], b[:])
	}
	return buf
}

// BuildEventInfo lays out one event detail buffer: the 112-byte header,
// one 24-byte property record per property, then the name region.
func BuildEventInfo(info EventInfo) []byte {
	n := len(info.Properties)
	buf := make([]byte, 112+24*n)
	g := mustGUID(info.ProviderGUID)
	copy(buf[0:16], g[:])
	desc := info.Descriptor.Bytes()
	copy(buf[32:48], desc[:])
	binary.LittleEndian.PutUint32(buf[100:104], uint32(n)) // property count
	binary.LittleEndian.PutUint32(buf[104:108], uint32(n)) // top-level property count
	if info.EventName != "" {
		binary.LittleEndian.PutUint32(buf[92:96], uint32(len(buf)))
		buf = append(buf, wstr(info.EventName)...)
	}
	if info.TaskName != "" {
		binary.LittleEndian.PutUint32(buf[68:72], uint32(len(buf)))
		buf = append(buf, wstr(info.TaskName)...)
	}
	for i, p := range info.Properties {
		rec := buf[112+24*i:]
		binary.LittleEndian.PutUint32(rec[0:4], p.Flags)
		binary.LittleEndian.PutUint32(rec[4:8], uint32(len(buf)))
		binary.LittleEndian.PutUint16(rec[8:10], p.InType)
		binary.LittleEndian.PutUint16(rec[10:12], p.OutType)
		binary.LittleEndian.PutUint16(rec[16:18], p.Count)
		binary.LittleEndian.PutUint16(rec[18:20], p.Length)
		buf = append(buf, wstr(p.Name)...)
	}
	return buf
}

// Source is an in-memory tdh.Source over a configured catalog. It honors
// the two-phase size protocol and counts every raw query call; one
// negotiation is two calls.
type Source struct {
	mu        sync.Mutex
	providers []ProviderEntry
	events    map[string][]EventInfo
	calls     map[string]int

	// Fail fields, when nonzero, answer every call of that operation
	// with the given status in place of the real protocol.
	FailProviders wire.Status
	FailEvents    wire.Status
	FailDetail    wire.Status
}

// NewSource returns a source with no providers.
func NewSource() *Source {
	return &Source{
		events: make(map[string][]EventInfo),
		calls:  make(map[string]int),
	}
}

// AddProvider registers a provider record and the event details answered
// for its GUID.
func (s *Source) AddProvider(entry ProviderEntry, events ...EventInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, entry)
	s.events[mustNormal(entry.GUID)] = events
}

// Calls reports how many raw query calls op has received, keyed by the
// tdh.Op names.
func (s *Source) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Source) EnumerateProviders(buf []byte, size *uint32) wire.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[tdh.OpEnumerateProviders]++
	if s.FailProviders != 0 {
		return s.FailProviders
	}
	return respond(buf, size, BuildProviderEnumeration(s.providers))
}

func (s *Source) EnumerateEvents(providerGUID string, buf []byte, size *uint32) wire.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[tdh.OpEnumerateEvents]++
	if s.FailEvents != 0 {
		return s.FailEvents
	}
	infos, ok := s.lookup(providerGUID)
	if !ok {
		return StatusNotFound
	}
	descs := make([]tdh.EventDescriptor, len(infos))
	for i, info := range infos {
		descs[i] = info.Descriptor
	}
	return respond(buf, size, BuildEventEnumeration(descs))
}

func (s *Source) EventDetail(providerGUID string, desc tdh.EventDescriptor, buf []byte, size *uint32) wire.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[tdh.OpEventDetail]++
	if s.FailDetail != 0 {
		return s.FailDetail
	}
	infos, ok := s.lookup(providerGUID)
	if !ok {
		return StatusNotFound
	}
	for _, info := range infos {
		if info.Descriptor.ID == desc.ID && info.Descriptor.Version == desc.Version {
			return respond(buf, size, BuildEventInfo(info))
		}
	}
	return StatusNotFound
}

func (s *Source) lookup(providerGUID string) ([]EventInfo, bool) {
	key, err := tdh.NormalizeGUID(providerGUID)
	if err != nil {
		return nil, false
	}
	infos, ok := s.events[key]
	return infos, ok
}

// respond completes one call of the two-phase protocol for data.
func respond(buf []byte, size *uint32, data []byte) wire.Status {
	*size = uint32(len(data))
	if len(buf) < len(data) {
		return wire.StatusInsufficientBuffer
	}
	copy(buf, data)
	return wire.StatusSuccess
}

func mustGUID(s string) [16]byte {
	if s == "" {
		return [16]byte{}
	}
	g, err := tdh.ParseGUID(s)
	if err != nil {
		panic(fmt.Sprintf("tdhtest: %v", err))
	}
	return g
}

func mustNormal(s string) string {
	n, err := tdh.NormalizeGUID(s)
	if err != nil {
		panic(fmt.Sprintf("tdhtest: %v", err))
	}
	return n
}

// wstr encodes s as null-terminated UTF-16LE.
func wstr(s string) []byte {
	units := utf16.Encode([]rune(s))
	buf := make([]byte, 0, 2*len(units)+2)
	for _, u := range units {
		buf = binary.LittleEndian.AppendUint16(buf, u)
	}
	return binary.LittleEndian.AppendUint16(buf, 0)
}
