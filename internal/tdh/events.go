package tdh

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/danmuck/tdhctl/internal/wire"
)

// EnumerateProviderEvents queries src for every event version the
// provider declares, one entry per (ID, Version) in declaration order.
// A decode failure on any event aborts the whole enumeration.
func EnumerateProviderEvents(src Source, providerGUID string) ([]Event, error) {
	buf, err := wire.Negotiate(OpEnumerateEvents, func(b []byte, size *uint32) wire.Status {
		return src.EnumerateEvents(providerGUID, b, size)
	})
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", providerGUID, err)
	}
	descs, err := DecodeEventDescriptors(buf)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", providerGUID, err)
	}

	events := make([]Event, 0, len(descs))
	for _, desc := range descs {
		detail, err := wire.Negotiate(OpEventDetail, func(b []byte, size *uint32) wire.Status {
			return src.EventDetail(providerGUID, desc, b, size)
		})
		if err != nil {
			return nil, fmt.Errorf("provider %s event %d v%d: %w",
				providerGUID, desc.ID, desc.Version, err)
		}
		ev, err := DecodeEventInfo(detail)
		if err != nil {
			return nil, fmt.Errorf("provider %s event %d v%d: %w",
				providerGUID, desc.ID, desc.Version, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEventDescriptors parses an event enumeration buffer: an 8-byte
// header holding the event count followed by the fixed descriptor
// records.
func DecodeEventDescriptors(buf []byte) ([]EventDescriptor, error) {
	head, err := wire.Record(buf, 0, eventEnumHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("event enumeration header: %w", err)
	}
	count := binary.LittleEndian.Uint32(head[0:4])

	records, err := wire.Records(buf, eventEnumHeaderSize, descriptorSize, count)
	if err != nil {
		return nil, fmt.Errorf("event descriptors: %w", err)
	}
	descs := make([]EventDescriptor, 0, count)
	for rec := range records {
		descs = append(descs, DecodeEventDescriptor(rec))
	}
	return descs, nil
}

// DecodeEventInfo parses one event detail buffer: the fixed header, the
// top-level property records after it, and the string region both
// address by offset. The keyword is masked to its low 48 bits and the
// event name falls back to the task name when unset; trailing spaces are
// trimmed from either.
func DecodeEventInfo(buf []byte) (Event, error) {
	head, err := wire.Record(buf, 0, eventInfoHeaderSize)
	if err != nil {
		return Event{}, fmt.Errorf("event info header: %w", err)
	}
	guid, err := FormatGUID(head[0:16])
	if err != nil {
		return Event{}, err
	}
	desc := DecodeEventDescriptor(head[32:48])

	ev := Event{
		ProviderGUID: guid,
		ID:           desc.ID,
		Version:      desc.Version,
		Channel:      desc.Channel,
		Level:        desc.Level,
		Opcode:       desc.Opcode,
		Task:         desc.Task,
		Keyword:      desc.Keyword & KeywordMask,
	}

	eventNameOff := binary.LittleEndian.Uint32(head[92:96])
	taskNameOff := binary.LittleEndian.Uint32(head[68:72])
	switch {
	case eventNameOff > 0:
		name, err := wire.ReadWideString(buf, int(eventNameOff))
		if err != nil {
			return Event{}, fmt.Errorf("event name: %w", err)
		}
		ev.Name = strings.TrimRight(name, " ")
	case taskNameOff > 0:
		name, err := wire.ReadWideString(buf, int(taskNameOff))
		if err != nil {
			return Event{}, fmt.Errorf("task name: %w", err)
		}
		ev.Name = strings.TrimRight(name, " ")
	}

	topCount := binary.LittleEndian.Uint32(head[104:108])
	records, err := wire.Records(buf, eventInfoHeaderSize, propertyInfoSize, topCount)
	if err != nil {
		return Event{}, fmt.Errorf("property records: %w", err)
	}
	fields := make([]Field, 0, topCount)
	for rec := range records {
		f, err := decodeField(buf, rec, fields)
		if err != nil {
			return Event{}, err
		}
		fields = append(fields, f)
	}
	ev.Fields = fields
	return ev, nil
}

// decodeField parses one property record. prior holds the fields decoded
// so far; a parameterized length or count refers into it by index, so
// references only ever point backward.
func decodeField(buf, rec []byte, prior []Field) (Field, error) {
	flags := binary.LittleEndian.Uint32(rec[0:4])
	name, err := wire.ReadWideString(buf, int(binary.LittleEndian.Uint32(rec[4:8])))
	if err != nil {
		return Field{}, fmt.Errorf("field name: %w", err)
	}

	f := Field{
		Name:    name,
		InType:  InType(binary.LittleEndian.Uint16(rec[8:10])),
		OutType: binary.LittleEndian.Uint16(rec[10:12]),
	}
	count := binary.LittleEndian.Uint16(rec[16:18])
	length := binary.LittleEndian.Uint16(rec[18:20])

	switch {
	case flags&PropertyParamFixedLength != 0:
		f.Length = Literal(length)
	case flags&PropertyParamLength != 0:
		if int(length) >= len(prior) {
			return Field{}, fmt.Errorf("%w: field %q length index %d of %d decoded",
				ErrFieldIndexOutOfBounds, name, length, len(prior))
		}
		f.Length = FieldRef(prior[length].Name)
	}

	switch {
	case flags&PropertyParamFixedCount != 0:
		f.Count = Literal(count)
	case flags&PropertyParamCount != 0:
		if int(count) >= len(prior) {
			return Field{}, fmt.Errorf("%w: field %q count index %d of %d decoded",
				ErrFieldIndexOutOfBounds, name, count, len(prior))
		}
		f.Count = FieldRef(prior[count].Name)
	}

	// The schema contract guarantees a field never carries both; a
	// buffer that claims otherwise is not decodable data.
	if !f.Length.IsZero() && !f.Count.IsZero() {
		panic(fmt.Sprintf("tdh: field %q resolves both length and count", name))
	}
	return f, nil
}
