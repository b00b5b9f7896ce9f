package buf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/wire"
)

func TestWriterPushPrimitives(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushVarint(300)
	w.PushFixed32(0x01020304)
	w.PushFixed64(0x0102030405060708)
	w.PushRaw([]byte("abc"))
	w.PushFieldTag(1, wire.Varint)

	msg := w.Freeze()
	got := msg.ToVec()

	want := wire.AppendVarint(nil, 300)
	want = wire.AppendFixed32(want, 0x01020304)
	want = wire.AppendFixed64(want, 0x0102030405060708)
	want = append(want, "abc"...)
	want = wire.AppendTag(want, 1, wire.Varint)

	assert.Equal(t, want, got)
}

func TestWriterDepthTracksOpenFrames(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	require.Equal(t, 0, w.Depth())
	w.BeginLength(struct{}{})
	require.Equal(t, 1, w.Depth())
	w.BeginLength(struct{}{})
	require.Equal(t, 2, w.Depth())
	w.EndLength()
	require.Equal(t, 1, w.Depth())
	w.EndLength()
	require.Equal(t, 0, w.Depth())
}

func TestWriterEndLengthWithoutBeginIsNoop(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushRaw([]byte("x"))
	assert.NotPanics(t, func() { w.EndLength() })
	assert.Equal(t, []byte("x"), w.Freeze().ToVec())
}

func TestWriterSingleLengthFramedField(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushFieldTag(2, wire.Len)
	w.BeginLength(struct{}{})
	w.PushRaw([]byte("Some content"))
	w.EndLength()

	got := w.Freeze().ToVec()
	want := wire.AppendTag(nil, 2, wire.Len)
	want = wire.AppendVarint(want, 12)
	want = append(want, "Some content"...)
	assert.Equal(t, want, got)
}

func TestWriterNestedLengthFrames(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushFieldTag(1, wire.Len)
	w.BeginLength(struct{}{}) // outer
	w.PushFieldTag(2, wire.Len)
	w.BeginLength(struct{}{}) // inner
	w.PushVarint(1)
	w.EndLength() // close inner
	w.EndLength() // close outer

	got := w.Freeze().ToVec()

	innerBody := wire.AppendVarint(nil, 1)
	inner := wire.AppendTag(nil, 2, wire.Len)
	inner = wire.AppendVarint(inner, uint64(len(innerBody)))
	inner = append(inner, innerBody...)

	want := wire.AppendTag(nil, 1, wire.Len)
	want = wire.AppendVarint(want, uint64(len(inner)))
	want = append(want, inner...)

	assert.Equal(t, want, got)
}

func TestWriterStateMutRootAndFrame(t *testing.T) {
	w := buf.NewWriter[int](7)
	assert.Equal(t, 7, *w.StateMut())

	w.BeginLength(42)
	assert.Equal(t, 42, *w.StateMut())
	*w.StateMut() = 99

	w.EndLength()
	assert.Equal(t, 7, *w.StateMut())
}

func TestWriterLenMatchesFrozenToVecLength(t *testing.T) {
	w := buf.NewWriter[struct{}](struct{}{})
	w.PushFieldTag(1, wire.Len)
	w.BeginLength(struct{}{})
	w.PushRaw([]byte("0123456789"))
	w.EndLength()

	assert.Equal(t, w.Len(), len(w.Freeze().ToVec()))
}
