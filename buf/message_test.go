package buf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/stval"
	"github.com/svalproto/pbstream/wire"
)

func TestMessageLenMatchesToVecLength(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushFieldTag(1, wire.Len)
	w.BeginLength(struct{}{})
	w.PushRaw([]byte("hello world"))
	w.EndLength()
	w.PushVarint(42)

	msg := w.Freeze()
	assert.Equal(t, msg.Len(), len(msg.ToVec()))
}

func TestMessageToVecZeroCopyWhenNoChunks(t *testing.T) {
	raw := []byte{1, 2, 3}
	msg := buf.PreEncoded(raw)
	got := msg.ToVec()
	require.Equal(t, raw, got)
	// Same backing array: no copy was made for the flat fast path.
	got[0] = 9
	assert.Equal(t, byte(9), raw[0])
}

func TestPreEncodedMessageRoundTripsThroughItself(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushFieldTag(1, wire.Len)
	w.BeginLength(struct{}{})
	w.PushRaw([]byte("abc"))
	w.EndLength()
	msg := w.Freeze()
	bytes := msg.ToVec()

	wrapped := buf.PreEncoded(bytes)
	assert.Equal(t, bytes, wrapped.ToVec())
}

// captureStream implements stval.Stream, recording only the binary
// events a Message.Stream call is expected to emit. Every other
// method panics if called, since Message never emits anything else.
type captureStream struct {
	size  *int
	frags [][]byte
	ended bool
}

func (c *captureStream) BinaryBegin(size *int) error {
	c.size = size
	return nil
}

func (c *captureStream) BinaryFragment(v []byte, _ stval.FragmentKind) error {
	c.frags = append(c.frags, append([]byte(nil), v...))
	return nil
}

func (c *captureStream) BinaryEnd() error {
	c.ended = true
	return nil
}

func (c *captureStream) unexpected(name string) error {
	panic("buf_test: unexpected Stream call " + name)
}

func (c *captureStream) Null() error                                      { return c.unexpected("Null") }
func (c *captureStream) Bool(bool) error                                  { return c.unexpected("Bool") }
func (c *captureStream) U32(uint32) error                                 { return c.unexpected("U32") }
func (c *captureStream) U64(uint64) error                                 { return c.unexpected("U64") }
func (c *captureStream) I32(int32) error                                  { return c.unexpected("I32") }
func (c *captureStream) I64(int64) error                                  { return c.unexpected("I64") }
func (c *captureStream) U128(stval.Uint128) error                         { return c.unexpected("U128") }
func (c *captureStream) I128(stval.Int128) error                          { return c.unexpected("I128") }
func (c *captureStream) F32(float32) error                                { return c.unexpected("F32") }
func (c *captureStream) F64(float64) error                                { return c.unexpected("F64") }
func (c *captureStream) TextBegin(*int) error                             { return c.unexpected("TextBegin") }
func (c *captureStream) TextFragment(string) error                        { return c.unexpected("TextFragment") }
func (c *captureStream) TextEnd() error                                   { return c.unexpected("TextEnd") }
func (c *captureStream) RecordBegin(string, *stval.Index) error           { return c.unexpected("RecordBegin") }
func (c *captureStream) RecordValueBegin(string, stval.Index) error       { return c.unexpected("RecordValueBegin") }
func (c *captureStream) RecordValueEnd() error                            { return c.unexpected("RecordValueEnd") }
func (c *captureStream) RecordEnd() error                                 { return c.unexpected("RecordEnd") }
func (c *captureStream) TupleBegin(*stval.Index) error                    { return c.unexpected("TupleBegin") }
func (c *captureStream) TupleValueBegin(stval.Index) error                { return c.unexpected("TupleValueBegin") }
func (c *captureStream) TupleValueEnd() error                             { return c.unexpected("TupleValueEnd") }
func (c *captureStream) TupleEnd() error                                  { return c.unexpected("TupleEnd") }
func (c *captureStream) SeqBegin(*int) error                              { return c.unexpected("SeqBegin") }
func (c *captureStream) SeqValueBegin() error                             { return c.unexpected("SeqValueBegin") }
func (c *captureStream) SeqValueEnd() error                               { return c.unexpected("SeqValueEnd") }
func (c *captureStream) SeqEnd() error                                    { return c.unexpected("SeqEnd") }
func (c *captureStream) MapBegin(*int) error                              { return c.unexpected("MapBegin") }
func (c *captureStream) MapKeyBegin() error                               { return c.unexpected("MapKeyBegin") }
func (c *captureStream) MapKeyEnd() error                                 { return c.unexpected("MapKeyEnd") }
func (c *captureStream) MapValueBegin() error                             { return c.unexpected("MapValueBegin") }
func (c *captureStream) MapValueEnd() error                               { return c.unexpected("MapValueEnd") }
func (c *captureStream) MapEnd() error                                    { return c.unexpected("MapEnd") }
func (c *captureStream) EnumBegin(string, *stval.Index) error             { return c.unexpected("EnumBegin") }
func (c *captureStream) EnumEnd(string, *stval.Index) error               { return c.unexpected("EnumEnd") }
func (c *captureStream) TaggedBegin(stval.Tag) error                      { return c.unexpected("TaggedBegin") }
func (c *captureStream) TaggedEnd(stval.Tag) error                        { return c.unexpected("TaggedEnd") }
func (c *captureStream) Tag(stval.Tag, string, *stval.Index) error        { return c.unexpected("Tag") }

var _ stval.Stream = (*captureStream)(nil)

func TestMessageStreamEmitsBorrowedAndComputedSpans(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushRaw([]byte("abc"))
	w.PushFieldTag(7, wire.Len)
	w.BeginLength(struct{}{})
	w.PushRaw([]byte("def"))
	w.EndLength()
	w.PushRaw([]byte("ghi"))
	msg := w.Freeze()

	s := &captureStream{}
	require.NoError(t, msg.Stream(s))
	assert.True(t, s.ended)
	require.NotNil(t, s.size)
	assert.Equal(t, msg.Len(), *s.size)

	var rebuilt []byte
	for _, f := range s.frags {
		rebuilt = append(rebuilt, f...)
	}
	assert.Equal(t, msg.ToVec(), rebuilt)
}
