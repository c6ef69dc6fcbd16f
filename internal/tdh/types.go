package tdh

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SchemaSource identifies where a provider's decoding metadata comes
// from. The set is closed: decode rejects any code above SchemaUnknown.
type SchemaSource uint32

const (
	SchemaXMLFile      SchemaSource = 0
	SchemaWBEM         SchemaSource = 1
	SchemaWPP          SchemaSource = 2
	SchemaTraceLogging SchemaSource = 3
	SchemaUnknown      SchemaSource = 4
)

func (s SchemaSource) String() string {
	switch s {
	case SchemaXMLFile:
		return "xml"
	case SchemaWBEM:
		return "wbem"
	case SchemaWPP:
		return "wpp"
	case SchemaTraceLogging:
		return "tracelogging"
	case SchemaUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("schema %d", uint32(s))
	}
}

// MarshalJSON encodes the schema source by name.
func (s SchemaSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSchemaSource maps a textual schema source name back to its code.
func ParseSchemaSource(s string) (SchemaSource, error) {
	switch strings.ToLower(s) {
	case "xml", "xmlfile":
		return SchemaXMLFile, nil
	case "wbem":
		return SchemaWBEM, nil
	case "wpp":
		return SchemaWPP, nil
	case "tracelogging", "tlg":
		return SchemaTraceLogging, nil
	case "unknown":
		return SchemaUnknown, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSchemaSource, s)
}

// Provider is one registered event provider.
type Provider struct {
	GUID   string       `json:"guid"`
	Name   string       `json:"name"`
	Schema SchemaSource `json:"schema"`
}

// Event is the decoded schema of one event version. Distinct versions of
// the same ID are distinct values; nothing is merged across versions.
type Event struct {
	ProviderGUID string  `json:"provider_guid"`
	ID           uint16  `json:"id"`
	Version      uint8   `json:"version"`
	Name         string  `json:"name,omitempty"`
	Channel      uint8   `json:"channel,omitempty"`
	Level        uint8   `json:"level,omitempty"`
	Opcode       uint8   `json:"opcode,omitempty"`
	Task         uint16  `json:"task,omitempty"`
	Keyword      uint64  `json:"keyword"`
	Fields       []Field `json:"fields"`
}

// Field is one top-level event property. Length and Count are mutually
// exclusive; at most one is present.
type Field struct {
	Name    string `json:"name"`
	InType  InType `json:"in_type"`
	OutType uint16 `json:"out_type,omitempty"`
	Length  Ref    `json:"length,omitzero"`
	Count   Ref    `json:"count,omitzero"`
}

// RefKind discriminates how a field's byte length or element count is
// determined.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefLiteral
	RefField
)

// Ref resolves a field's length or count: absent, a literal value, or
// the name of an earlier sibling field that holds the value at decode
// time.
type Ref struct {
	Kind  RefKind
	Value uint16
	Field string
}

// Literal returns a Ref fixed to v.
func Literal(v uint16) Ref { return Ref{Kind: RefLiteral, Value: v} }

// FieldRef returns a Ref naming the earlier field holding the value.
func FieldRef(name string) Ref { return Ref{Kind: RefField, Field: name} }

// IsZero reports whether r is absent.
func (r Ref) IsZero() bool { return r.Kind == RefNone }

func (r Ref) String() string {
	switch r.Kind {
	case RefLiteral:
		return strconv.FormatUint(uint64(r.Value), 10)
	case RefField:
		return r.Field
	default:
		return ""
	}
}

// MarshalJSON encodes a literal as a number, a field reference as a
// string, and an absent ref as null.
func (r Ref) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RefLiteral:
		return json.Marshal(r.Value)
	case RefField:
		return json.Marshal(r.Field)
	default:
		return []byte("null"), nil
	}
}
