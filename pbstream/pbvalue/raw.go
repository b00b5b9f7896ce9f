package pbvalue

import (
	"fmt"

	"github.com/svalproto/pbstream/pbstream"
	"github.com/svalproto/pbstream/stval"
	"github.com/svalproto/pbstream/wire"
)

// Raw adapts an already wire-encoded scalar into a Value: Bytes is
// written verbatim right after the field tag, with no length prefix
// and no backpatch frame opened. Wire must be one of wire.Varint,
// wire.I32, or wire.I64. Use Pre instead when the pre-encoded bytes
// are a length-delimited submessage rather than a bare scalar.
type Raw struct {
	Wire  wire.Type
	Bytes []byte
}

func (r Raw) Stream(s stval.Stream) error {
	var tag stval.Tag
	switch r.Wire {
	case wire.Varint:
		tag = pbstream.TagRawVarint
	case wire.I32:
		tag = pbstream.TagRawI32
	case wire.I64:
		tag = pbstream.TagRawI64
	default:
		return &pbstream.EncodingError{Err: fmt.Errorf("pbvalue: unsupported raw wire type %s", r.Wire)}
	}
	if err := s.TaggedBegin(tag); err != nil {
		return err
	}
	if err := s.BinaryBegin(nil); err != nil {
		return err
	}
	if err := s.BinaryFragment(r.Bytes, stval.FragmentBorrowed); err != nil {
		return err
	}
	if err := s.BinaryEnd(); err != nil {
		return err
	}
	return s.TaggedEnd(tag)
}

var _ stval.Value = Raw{}
