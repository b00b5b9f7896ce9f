package pbstream

import "github.com/svalproto/pbstream/stval"

// The driver recognizes four well-known hint tags on the incoming
// event stream, each hinting at how the *next* scalar or sequence
// should be framed on the wire, plus three raw-injection tags (see
// TagRawVarint below). A Value wraps the event it wants to hint with
// TaggedBegin(tag)/TaggedEnd(tag).
const (
	// TagI32 forces the next numeric scalar to use the fixed32 wire
	// type instead of varint.
	TagI32 stval.Tag = "protobuf.i32"
	// TagI64 forces the next numeric scalar to use the fixed64 wire
	// type instead of varint.
	TagI64 stval.Tag = "protobuf.i64"
	// TagVarintSigned forces the next signed scalar to use zig-zag
	// varint encoding instead of two's-complement.
	TagVarintSigned stval.Tag = "protobuf.varint_signed"
	// TagLenPacked forces the next sequence to be emitted as a single
	// length-delimited packed run with no per-element field tag. Only
	// meaningful around a numeric sequence.
	TagLenPacked stval.Tag = "protobuf.len_packed"

	// TagRawVarint, TagRawI32, and TagRawI64 mark the next binary run
	// as a scalar that was already wire-encoded elsewhere: the bytes
	// are written verbatim after the field tag, with no length prefix
	// and no backpatch frame. This is the escape hatch for a caller
	// holding a pre-encoded scalar rather than a pre-encoded
	// submessage (pbvalue.Raw streams through these tags; pbvalue.Pre
	// instead streams a *buf.Message as an ordinary binary run, which
	// the driver frames as a length-delimited field).
	TagRawVarint stval.Tag = "protobuf.raw_varint"
	TagRawI32    stval.Tag = "protobuf.raw_i32"
	TagRawI64    stval.Tag = "protobuf.raw_i64"
)
