package tdh

// Record geometry of the native metadata layouts. Every multi-byte
// quantity is little-endian.
const (
	providerEnumHeaderSize = 8   // provider count u32, reserved u32
	providerInfoSize       = 24  // guid, schema source u32, name offset u32
	eventEnumHeaderSize    = 8   // event count u32, reserved u32
	descriptorSize         = 16  // id, version, channel, level, opcode, task, keyword
	eventInfoHeaderSize    = 112 // guids, descriptor, offset table, counts, flags
	propertyInfoSize       = 24  // flags, name offset, type union, count, length, reserved
)

// Property flag bits. Only the four length/count bits drive decoding;
// the rest are carried by schemas and ignored here.
const (
	PropertyStruct           uint32 = 0x01
	PropertyParamLength      uint32 = 0x02
	PropertyParamCount       uint32 = 0x04
	PropertyWBEMXMLFragment  uint32 = 0x08
	PropertyParamFixedLength uint32 = 0x10
	PropertyParamFixedCount  uint32 = 0x20
	PropertyHasTags          uint32 = 0x40
	PropertyHasCustomSchema  uint32 = 0x80
)

// KeywordMask keeps the low 48 keyword bits; the top 16 are reserved by
// the tracing runtime and never identify an event.
const KeywordMask uint64 = 0x0000FFFFFFFFFFFF
