package buf

import (
	"github.com/svalproto/pbstream/stval"
	"github.com/svalproto/pbstream/wire"
)

// Message is an immutable, frozen encoded protobuf payload: a byte
// buffer plus a chunk table of varint length prefixes that must be
// spliced in at the recorded offsets. Its logical bytes are never
// copied eagerly; ToVec, Stream, and IntoCursor each walk the same
// underlying representation.
type Message struct {
	buf    []byte
	chunks []chunkEntry
}

// PreEncoded wraps an already-valid protobuf-encoded byte slice as a
// Message with no chunk table. The writer performs no validation:
// this is the caller asserting that b is already well-formed wire
// bytes, typically bytes obtained from some other encoder.
func PreEncoded(b []byte) *Message {
	return &Message{buf: b}
}

// Len returns the logical byte length: the raw buffer length plus the
// varint-encoded length of every resolved chunk.
func (m *Message) Len() int {
	total := len(m.buf)
	for _, c := range m.chunks {
		if c.resolved {
			total += wire.VarintLen(c.value)
		}
	}
	return total
}

// ToVec materializes the logical bytes into one contiguous slice. If
// the chunk table is empty (the common case for pre-encoded or
// otherwise flat messages), it returns the underlying buffer directly
// with no copy.
func (m *Message) ToVec() []byte {
	if len(m.chunks) == 0 {
		return m.buf
	}
	out := make([]byte, 0, m.Len())
	prev := 0
	for _, c := range m.chunks {
		out = append(out, m.buf[prev:c.offset]...)
		out = wire.AppendVarint(out, c.value)
		prev = c.offset
	}
	out = append(out, m.buf[prev:]...)
	return out
}

// Stream implements stval.Value: an encoded message streams its
// logical bytes as a single binary payload, with known length. This
// is how a pre-encoded nested message is embedded verbatim into an
// enclosing message: the driver sees a binary value and frames it as
// a LEN field, exactly as it would a byte slice.
func (m *Message) Stream(s stval.Stream) error {
	n := m.Len()
	if err := s.BinaryBegin(&n); err != nil {
		return err
	}
	prev := 0
	for _, c := range m.chunks {
		if prev != c.offset {
			if err := s.BinaryFragment(m.buf[prev:c.offset], stval.FragmentBorrowed); err != nil {
				return err
			}
		}
		var tmp [wire.MaxVarintLen]byte
		v := wire.AppendVarint(tmp[:0], c.value)
		if err := s.BinaryFragment(v, stval.FragmentComputed); err != nil {
			return err
		}
		prev = c.offset
	}
	if prev != len(m.buf) {
		if err := s.BinaryFragment(m.buf[prev:], stval.FragmentBorrowed); err != nil {
			return err
		}
	}
	return s.BinaryEnd()
}

var _ stval.Value = (*Message)(nil)
