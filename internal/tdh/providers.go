package tdh

import (
	"encoding/binary"
	"fmt"

	"github.com/danmuck/tdhctl/internal/wire"
)

// EnumerateProviders queries src for the full registered provider list.
func EnumerateProviders(src Source) ([]Provider, error) {
	buf, err := wire.Negotiate(OpEnumerateProviders, src.EnumerateProviders)
	if err != nil {
		return nil, err
	}
	return DecodeProviders(buf)
}

// DecodeProviders parses a provider enumeration buffer: an 8-byte header
// holding the provider count, the fixed provider records, and a string
// region addressed by per-record name offsets. Any malformed record
// fails the whole enumeration.
func DecodeProviders(buf []byte) ([]Provider, error) {
	head, err := wire.Record(buf, 0, providerEnumHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("provider enumeration header: %w", err)
	}
	count := binary.LittleEndian.Uint32(head[0:4])

	records, err := wire.Records(buf, providerEnumHeaderSize, providerInfoSize, count)
	if err != nil {
		return nil, fmt.Errorf("provider records: %w", err)
	}
	providers := make([]Provider, 0, count)
	for rec := range records {
		guid, err := FormatGUID(rec[0:16])
		if err != nil {
			return nil, err
		}
		schema := SchemaSource(binary.LittleEndian.Uint32(rec[16:20]))
		if schema > SchemaUnknown {
			return nil, fmt.Errorf("%w: code %d for provider %s",
				ErrUnknownSchemaSource, uint32(schema), guid)
		}
		name, err := wire.ReadWideString(buf, int(binary.LittleEndian.Uint32(rec[20:24])))
		if err != nil {
			return nil, fmt.Errorf("provider %s name: %w", guid, err)
		}
		providers = append(providers, Provider{GUID: guid, Name: name, Schema: schema})
	}
	return providers, nil
}
