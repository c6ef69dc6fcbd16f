package tdh

import "encoding/binary"

// EventDescriptor is the fixed identification record of one event
// version. It round-trips byte-exactly through its 16-byte wire form.
type EventDescriptor struct {
	ID      uint16
	Version uint8
	Channel uint8
	Level   uint8
	Opcode  uint8
	Task    uint16
	Keyword uint64
}

// Bytes returns the 16-byte little-endian wire form.
func (d EventDescriptor) Bytes() [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint16(b[0:2], d.ID)
	b[2] = d.Version
	b[3] = d.Channel
	b[4] = d.Level
	b[5] = d.Opcode
	binary.LittleEndian.PutUint16(b[6:8], d.Task)
	binary.LittleEndian.PutUint64(b[8:16], d.Keyword)
	return b
}

// DecodeEventDescriptor reads the wire form produced by Bytes. rec must
// hold 16 bytes.
func DecodeEventDescriptor(rec []byte) EventDescriptor {
	return EventDescriptor{
		ID:      binary.LittleEndian.Uint16(rec[0:2]),
		Version: rec[2],
		Channel: rec[3],
		Level:   rec[4],
		Opcode:  rec[5],
		Task:    binary.LittleEndian.Uint16(rec[6:8]),
		Keyword: binary.LittleEndian.Uint64(rec[8:16]),
	}
}
