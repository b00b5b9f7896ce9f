// Package wire implements the low-level protobuf binary encoding
// primitives: varints (including zig-zag and two's-complement signed
// forms), fixed-width little-endian integers, and field tag
// composition. Nothing in this package knows about messages, fields,
// or descriptors; it only knows how to turn numbers into the bytes
// the protobuf wire format specifies.
package wire

// Type is the 3-bit wire type that accompanies every field tag and
// determines how the payload that follows is shaped.
type Type int8

const (
	// Varint is used for int32, int64, uint32, uint64, sint32, sint64,
	// bool, and enum fields.
	Varint Type = 0
	// I64 is used for fixed64, sfixed64, and double fields.
	I64 Type = 1
	// Len is used for string, bytes, embedded messages, and packed
	// repeated fields.
	Len Type = 2
	// StartGroup and EndGroup are the deprecated group delimiters.
	// This package never emits them; they are kept only so a caller
	// decoding unknown fields elsewhere can name them symmetrically.
	StartGroup Type = 3
	EndGroup   Type = 4
	// I32 is used for fixed32, sfixed32, and float fields.
	I32 Type = 5
)

func (t Type) String() string {
	switch t {
	case Varint:
		return "varint"
	case I64:
		return "i64"
	case Len:
		return "len"
	case StartGroup:
		return "start_group"
	case EndGroup:
		return "end_group"
	case I32:
		return "i32"
	default:
		return "unknown"
	}
}
