package tdh

import (
	"encoding/json"
	"fmt"
)

// InType is the primitive wire type of a field. Codes outside the named
// table keep their raw numeric value; an unrecognized code is data, not
// an error.
type InType uint16

const (
	InTypeNull InType = iota
	InTypeUnicodeString
	InTypeANSIString
	InTypeInt8
	InTypeUint8
	InTypeInt16
	InTypeUint16
	InTypeInt32
	InTypeUint32
	InTypeInt64
	InTypeUint64
	InTypeFloat
	InTypeDouble
	InTypeBoolean
	InTypeBinary
	InTypeGUID
	InTypePointer
	InTypeFileTime
	InTypeSystemTime
	InTypeSID
	InTypeHexInt32
	InTypeHexInt64
	InTypeManifestCountedString
	InTypeManifestCountedANSIString
	InTypeReserved24
	InTypeManifestCountedBinary
	InTypeCountedString
	InTypeCountedANSIString
	InTypeReversedCountedString
	InTypeReversedCountedANSIString
	InTypeNonNullTerminatedString
	InTypeNonNullTerminatedANSIString
	InTypeUnicodeChar
	InTypeANSIChar
	InTypeSizeT
	InTypeHexDump
	InTypeWBEMSID
)

var inTypeNames = [...]string{
	"null",
	"unicodestring",
	"ansistring",
	"int8",
	"uint8",
	"int16",
	"uint16",
	"int32",
	"uint32",
	"int64",
	"uint64",
	"float",
	"double",
	"boolean",
	"binary",
	"guid",
	"pointer",
	"filetime",
	"systemtime",
	"sid",
	"hexint32",
	"hexint64",
	"manifestcountedstring",
	"manifestcountedansistring",
	"reserved24",
	"manifestcountedbinary",
	"countedstring",
	"countedansistring",
	"reversedcountedstring",
	"reversedcountedansistring",
	"nonnullterminatedstring",
	"nonnullterminatedansistring",
	"unicodechar",
	"ansichar",
	"sizet",
	"hexdump",
	"wbemsid",
}

// Known reports whether t is inside the named table.
func (t InType) Known() bool { return int(t) < len(inTypeNames) }

func (t InType) String() string {
	if t.Known() {
		return inTypeNames[t]
	}
	return fmt.Sprintf("intype %d", uint16(t))
}

// MarshalJSON encodes known types by name and unrecognized codes
// numerically.
func (t InType) MarshalJSON() ([]byte, error) {
	if t.Known() {
		return json.Marshal(t.String())
	}
	return json.Marshal(uint16(t))
}
