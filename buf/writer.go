// Package buf implements the buffered writer at the heart of the
// streaming encoder: an append-only byte buffer plus a stack of
// deferred-length frames, so a length-delimited field's byte-length
// prefix can be written correctly even though it is only known after
// the field's payload has already been appended.
//
// This is a generalization of codec.Buffer's append-style encoding
// (EncodeVarint/EncodeFixed32/EncodeRawBytes) with one addition: a
// frame stack that tracks "bytes written since the last length
// boundary" so a caller never has to buffer a submessage separately
// just to learn its length.
package buf

import (
	"github.com/svalproto/pbstream/wire"
)

// defaultFrameDepth is how many frames the stack pre-reserves. Most
// encoded messages nest only a handful of levels deep; growing past
// this is fine, it just costs a reallocation.
const defaultFrameDepth = 16

// frame is one currently open deferred-length field.
type frame[T any] struct {
	// len is the number of payload bytes known to belong to this
	// frame that are not already accounted for by a closed inner
	// frame (whose own length and prefix were already folded in).
	len int
	// head is the offset into the byte buffer where "unaccounted
	// for" bytes begin; everything from head to the buffer's current
	// end either belongs directly to this frame or will be claimed by
	// a nested frame once it opens.
	head int
	// chunkIdx indexes into the writer's chunk table; that entry will
	// be resolved with this frame's final length when it closes.
	chunkIdx int
	// state is the caller's per-frame scratch value, chiefly used by
	// the stream driver to remember the field number of the
	// enclosing sequence or map so every element can re-emit it.
	state T
}

// chunkEntry is one insertion point where a varint length prefix must
// be spliced into the byte buffer at materialization time. Entries
// appear in strictly increasing offset order.
type chunkEntry struct {
	offset   int
	value    uint64
	resolved bool
}

// Writer accumulates protobuf wire bytes in a single forward pass. T
// is the type of scratch state a caller can stash per open frame (see
// StateMut); callers with no need for per-frame state can instantiate
// Writer[struct{}].
type Writer[T any] struct {
	out    []byte
	chunks []chunkEntry
	frames []frame[T]
	root   T
}

// NewWriter creates an empty writer with the given root-level state,
// used whenever StateMut is called with no frame open.
func NewWriter[T any](root T) *Writer[T] {
	w := &Writer[T]{root: root}
	w.frames = make([]frame[T], 0, defaultFrameDepth)
	return w
}

// Depth returns the number of currently open deferred-length frames.
func (w *Writer[T]) Depth() int {
	return len(w.frames)
}

// Reserve is a heuristic growth hint: it pre-grows the byte buffer
// assuming expectedEntries payload writes averaging a handful of
// bytes each. It never needs to be called; it only avoids a few
// reallocations for callers that know roughly how large their output
// will be.
func (w *Writer[T]) Reserve(expectedEntries int) {
	const approxBytesPerEntry = 8
	need := len(w.out) + expectedEntries*approxBytesPerEntry
	if need > cap(w.out) {
		grown := make([]byte, len(w.out), need)
		copy(grown, w.out)
		w.out = grown
	}
}

// PushVarint appends the unsigned varint encoding of v.
func (w *Writer[T]) PushVarint(v uint64) {
	w.out = wire.AppendVarint(w.out, v)
}

// PushFixed32 appends the little-endian 4-byte encoding of v.
func (w *Writer[T]) PushFixed32(v uint32) {
	w.out = wire.AppendFixed32(w.out, v)
}

// PushFixed64 appends the little-endian 8-byte encoding of v.
func (w *Writer[T]) PushFixed64(v uint64) {
	w.out = wire.AppendFixed64(w.out, v)
}

// PushRaw appends b verbatim.
func (w *Writer[T]) PushRaw(b []byte) {
	w.out = append(w.out, b...)
}

// PushFieldTag appends the field tag varint for (fieldNumber, wireType).
func (w *Writer[T]) PushFieldTag(fieldNumber int32, wireType wire.Type) {
	w.out = wire.AppendTag(w.out, fieldNumber, wireType)
}

// StateMut returns a pointer to the innermost open frame's scratch
// state, or to the root state if no frame is open.
func (w *Writer[T]) StateMut() *T {
	if n := len(w.frames); n > 0 {
		return &w.frames[n-1].state
	}
	return &w.root
}

// BeginLength opens a new deferred-length frame carrying the given
// per-frame state. Every byte pushed after this call and before the
// matching EndLength is eventually accounted for by this frame's
// length prefix.
func (w *Writer[T]) BeginLength(state T) {
	if n := len(w.frames); n > 0 {
		parent := &w.frames[n-1]
		parent.len += len(w.out) - parent.head
		parent.head = len(w.out)
	}
	w.frames = append(w.frames, frame[T]{
		head:     len(w.out),
		chunkIdx: len(w.chunks),
		state:    state,
	})
	w.chunks = append(w.chunks, chunkEntry{offset: len(w.out)})
}

// EndLength closes the innermost open frame, computing and recording
// its final byte length. Calling EndLength with no frame open is a
// defensive no-op: the writer never fails on well-formed input, and a
// caller mismatch here is expected to be caught by the driver's own
// state tracking rather than by a panic deep in the writer.
func (w *Writer[T]) EndLength() {
	n := len(w.frames)
	if n == 0 {
		return
	}
	f := w.frames[n-1]
	w.frames = w.frames[:n-1]

	finalLen := f.len + (len(w.out) - f.head)
	w.chunks[f.chunkIdx].value = uint64(finalLen)
	w.chunks[f.chunkIdx].resolved = true

	if n-1 > 0 {
		parent := &w.frames[n-2]
		parent.len += finalLen + wire.VarintLen(uint64(finalLen))
		parent.head = len(w.out)
	}
}

// Len returns the logical byte length of the message built so far,
// including frames that are still open (whose length prefixes are
// not yet resolved and so do not contribute to the total).
func (w *Writer[T]) Len() int {
	total := len(w.out)
	for _, c := range w.chunks {
		if c.resolved {
			total += wire.VarintLen(c.value)
		}
	}
	return total
}

// Freeze consumes the writer and returns the immutable encoded
// message. Any frames still open at the time of Freeze are ignored;
// their chunk entries remain unresolved and Message materialization
// will treat them as zero-length, per spec: freezing mid-encoding is
// the caller's responsibility to avoid.
func (w *Writer[T]) Freeze() *Message {
	return &Message{buf: w.out, chunks: w.chunks}
}
