// Package pbstream is the stream driver and public façade: it
// implements stval.Stream, turning a generic structured-value walk
// into protobuf wire bytes via the buf package, with no schema or
// generated message type involved anywhere in the process.
//
// A oneof/enum is flattened the same way protobuf generates one: each
// variant owns its own field number, and EnumBegin's index names the
// active variant directly rather than the oneof's position in its
// parent. A tag-only variant (no payload) is written as a plain i32
// enum value, matching how protobuf itself represents enums on the
// wire.
package pbstream

import (
	"encoding/binary"
	"math"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/stval"
	"github.com/svalproto/pbstream/wire"
)

type frameKind int8

const (
	frameMessage frameKind = iota
	framePackedSeq
	frameMapEntry
	frameBytes
)

// frame is the per-nesting-level state carried in buf.Writer's
// generic slot. Only containers that actually occupy a deferred-length
// frame need one; an unpacked sequence or the outer half of a map
// reuses the enclosing frame instead (see marker).
type frame struct {
	kind        frameKind
	isRootFrame bool
}

type markerKind int8

const (
	markerEnum markerKind = iota
	markerTagged
	markerSeq
	markerMap
)

// marker tracks a nesting level that does not itself open a writer
// frame: an unpacked sequence and the outer half of a map write their
// elements straight into the enclosing frame, each tagged individually
// (or, for a packed sequence, not tagged at all).
type marker struct {
	kind     markerKind
	fieldNum int32
	packed   bool
	tag      stval.Tag
}

type pendingHint struct {
	i32          bool
	i64          bool
	varintSigned bool
	lenPacked    bool
	rawWire      wire.Type
	hasRawWire   bool
}

type bytesMode int8

const (
	bytesNone bytesMode = iota
	bytesFramed
	bytesRaw
)

// Encoder implements stval.Stream, driving a buf.Writer as a Value
// walks itself. Encode and Marshal are the only way to obtain its
// encoded output.
type Encoder struct {
	w         *buf.Writer[frame]
	nextField int32
	pending   pendingHint
	started   bool
	bytes     bytesMode
	markers   []marker
}

// NewEncoder returns an Encoder ready to drive a single top-level
// Value.Stream call. The field state starts at field number 1: a
// standalone scalar or enum with nothing else streamed around it
// lands on field 1, per root promotion (see messageBegin).
func NewEncoder() *Encoder {
	return &Encoder{w: buf.NewWriter[frame](frame{}), nextField: 1}
}

func (e *Encoder) finish() (*buf.Message, error) {
	if len(e.markers) != 0 || e.w.Depth() != 0 {
		return nil, wrapErr(0, ErrUnbalancedContainer)
	}
	return e.w.Freeze(), nil
}

func (e *Encoder) fieldNumberFor(idx stval.Index) int32 {
	if idx.FromPosition {
		return idx.Number + 1
	}
	return idx.Number
}

func (e *Encoder) topMarker(k markerKind) (marker, error) {
	if n := len(e.markers); n > 0 && e.markers[n-1].kind == k {
		return e.markers[n-1], nil
	}
	return marker{}, ErrUnbalancedContainer
}

func (e *Encoder) popMarker(k markerKind) (marker, error) {
	m, err := e.topMarker(k)
	if err != nil {
		return marker{}, err
	}
	e.markers = e.markers[:len(e.markers)-1]
	return m, nil
}

// beginScalar consumes any pending width hint, decides the wire type
// a scalar should use, and writes its field tag unless this scalar is
// an element of a packed sequence (which carries one tag for the
// whole run, written by SeqBegin instead).
func (e *Encoder) beginScalar(defaultWT wire.Type) (wire.Type, error) {
	e.started = true
	wt := defaultWT
	switch {
	case e.pending.i32:
		wt = wire.I32
	case e.pending.i64:
		wt = wire.I64
	}
	e.pending.i32, e.pending.i64 = false, false
	return wt, e.writeScalarTag(wt)
}

// beginScalarNoHint is beginScalar for value kinds the i32/i64 width
// hint never applies to (bool, float, 128-bit integers, length-framed
// runs): the wire type is fixed by the value's own kind.
func (e *Encoder) beginScalarNoHint(wt wire.Type) error {
	e.started = true
	e.pending.i32, e.pending.i64 = false, false
	return e.writeScalarTag(wt)
}

func (e *Encoder) writeScalarTag(wt wire.Type) error {
	cur := *e.w.StateMut()
	if cur.kind == framePackedSeq {
		return nil
	}
	if e.nextField != 0 {
		e.w.PushFieldTag(e.nextField, wt)
		e.nextField = 0
	}
	return nil
}

// --- Primitives ---

func (e *Encoder) Null() error {
	e.nextField = 0
	e.pending = pendingHint{}
	return nil
}

func (e *Encoder) Bool(v bool) error {
	if err := e.beginScalarNoHint(wire.Varint); err != nil {
		return err
	}
	if v {
		e.w.PushVarint(1)
	} else {
		e.w.PushVarint(0)
	}
	return nil
}

func (e *Encoder) U32(v uint32) error {
	wt, err := e.beginScalar(wire.Varint)
	if err != nil {
		return err
	}
	if wt == wire.I32 {
		e.w.PushFixed32(v)
	} else if wt == wire.I64 {
		e.w.PushFixed64(uint64(v))
	} else {
		e.w.PushVarint(uint64(v))
	}
	return nil
}

func (e *Encoder) U64(v uint64) error {
	wt, err := e.beginScalar(wire.Varint)
	if err != nil {
		return err
	}
	if wt == wire.I64 {
		e.w.PushFixed64(v)
	} else if wt == wire.I32 {
		e.w.PushFixed32(uint32(v))
	} else {
		e.w.PushVarint(v)
	}
	return nil
}

func (e *Encoder) I32(v int32) error {
	signed := e.pending.varintSigned
	e.pending.varintSigned = false
	wt, err := e.beginScalar(wire.Varint)
	if err != nil {
		return err
	}
	switch {
	case wt == wire.I32:
		e.w.PushFixed32(uint32(v))
	case wt == wire.I64:
		e.w.PushFixed64(uint64(int64(v)))
	case signed:
		e.w.PushVarint(wire.EncodeZigZag(int64(v)))
	default:
		e.w.PushVarint(uint64(int64(v)))
	}
	return nil
}

func (e *Encoder) I64(v int64) error {
	signed := e.pending.varintSigned
	e.pending.varintSigned = false
	wt, err := e.beginScalar(wire.Varint)
	if err != nil {
		return err
	}
	switch {
	case wt == wire.I64:
		e.w.PushFixed64(uint64(v))
	case wt == wire.I32:
		e.w.PushFixed32(uint32(v))
	case signed:
		e.w.PushVarint(wire.EncodeZigZag(v))
	default:
		e.w.PushVarint(uint64(v))
	}
	return nil
}

// U128 and I128 have no native protobuf wire type; both are written
// as a 16-byte little-endian run, framed like a fixed-size bytes
// field, matching what a bytes-valued 128-bit field looks like on the
// wire in every proto schema that carries one.
func (e *Encoder) U128(v stval.Uint128) error {
	if err := e.beginScalarNoHint(wire.Len); err != nil {
		return err
	}
	e.push128(v.Hi, v.Lo)
	return nil
}

func (e *Encoder) I128(v stval.Int128) error {
	if err := e.beginScalarNoHint(wire.Len); err != nil {
		return err
	}
	e.push128(v.Hi, v.Lo)
	return nil
}

func (e *Encoder) push128(hi, lo uint64) {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], lo)
	binary.LittleEndian.PutUint64(b[8:16], hi)
	e.w.PushVarint(16)
	e.w.PushRaw(b[:])
}

func (e *Encoder) F32(v float32) error {
	if err := e.beginScalarNoHint(wire.I32); err != nil {
		return err
	}
	e.w.PushFixed32(math.Float32bits(v))
	return nil
}

func (e *Encoder) F64(v float64) error {
	if err := e.beginScalarNoHint(wire.I64); err != nil {
		return err
	}
	e.w.PushFixed64(math.Float64bits(v))
	return nil
}

// --- Text / binary ---

func (e *Encoder) TextBegin(size *int) error {
	if e.bytes != bytesNone {
		return wrapErr(0, ErrNestedBinary)
	}
	e.pending.hasRawWire = false
	if err := e.beginScalarNoHint(wire.Len); err != nil {
		return err
	}
	e.bytes = bytesFramed
	e.w.BeginLength(frame{kind: frameBytes})
	return nil
}

func (e *Encoder) TextFragment(v string) error {
	e.w.PushRaw([]byte(v))
	return nil
}

func (e *Encoder) TextEnd() error {
	e.bytes = bytesNone
	e.w.EndLength()
	return nil
}

func (e *Encoder) BinaryBegin(size *int) error {
	if e.bytes != bytesNone {
		return wrapErr(0, ErrNestedBinary)
	}
	if e.pending.hasRawWire {
		wt := e.pending.rawWire
		e.pending.hasRawWire = false
		if err := e.writeScalarTag(wt); err != nil {
			return err
		}
		e.bytes = bytesRaw
		return nil
	}
	if err := e.beginScalarNoHint(wire.Len); err != nil {
		return err
	}
	e.bytes = bytesFramed
	e.w.BeginLength(frame{kind: frameBytes})
	return nil
}

func (e *Encoder) BinaryFragment(v []byte, _ stval.FragmentKind) error {
	e.w.PushRaw(v)
	return nil
}

func (e *Encoder) BinaryEnd() error {
	framed := e.bytes == bytesFramed
	e.bytes = bytesNone
	if framed {
		e.w.EndLength()
	}
	return nil
}

// --- Record / Tuple ---
//
// A protobuf message does not distinguish named from positional
// fields, so both share messageBegin/messageEnd.

// messageBegin implements root promotion: the outermost record/tuple
// is never itself wrapped in a length envelope, and the root field-1
// state it inherited is cleared rather than consumed.
func (e *Encoder) messageBegin() error {
	if !e.started && e.w.Depth() == 0 {
		e.started = true
		e.nextField = 0
		*e.w.StateMut() = frame{kind: frameMessage, isRootFrame: true}
		return nil
	}
	e.started = true
	fn := e.nextField
	e.nextField = 0
	if fn == 0 {
		return wrapErr(0, errNoEnclosingField)
	}
	e.w.PushFieldTag(fn, wire.Len)
	e.w.BeginLength(frame{kind: frameMessage})
	return nil
}

func (e *Encoder) messageEnd() error {
	cur := *e.w.StateMut()
	if cur.kind != frameMessage {
		return wrapErr(0, ErrUnbalancedContainer)
	}
	if !cur.isRootFrame {
		e.w.EndLength()
	}
	return nil
}

func (e *Encoder) RecordBegin(label string, index *stval.Index) error { return e.messageBegin() }

func (e *Encoder) RecordValueBegin(label string, index stval.Index) error {
	e.nextField = e.fieldNumberFor(index)
	return nil
}

func (e *Encoder) RecordValueEnd() error { return nil }
func (e *Encoder) RecordEnd() error      { return e.messageEnd() }

func (e *Encoder) TupleBegin(index *stval.Index) error { return e.messageBegin() }

func (e *Encoder) TupleValueBegin(index stval.Index) error {
	e.nextField = e.fieldNumberFor(index)
	return nil
}

func (e *Encoder) TupleValueEnd() error { return nil }
func (e *Encoder) TupleEnd() error      { return e.messageEnd() }

// --- Seq ---

func (e *Encoder) SeqBegin(hintCount *int) error {
	if !e.started && e.w.Depth() == 0 {
		return wrapErr(0, errRootNotMessage)
	}
	fn := e.nextField
	e.nextField = 0
	if fn == 0 {
		return wrapErr(0, errNoEnclosingField)
	}
	packed := e.pending.lenPacked
	e.pending.lenPacked = false
	if hintCount != nil {
		e.w.Reserve(*hintCount)
	}
	if packed {
		e.w.PushFieldTag(fn, wire.Len)
		e.w.BeginLength(frame{kind: framePackedSeq})
	}
	e.markers = append(e.markers, marker{kind: markerSeq, fieldNum: fn, packed: packed})
	return nil
}

func (e *Encoder) SeqValueBegin() error {
	m, err := e.topMarker(markerSeq)
	if err != nil {
		return err
	}
	if !m.packed {
		e.nextField = m.fieldNum
	}
	return nil
}

func (e *Encoder) SeqValueEnd() error {
	_, err := e.topMarker(markerSeq)
	return err
}

func (e *Encoder) SeqEnd() error {
	m, err := e.popMarker(markerSeq)
	if err != nil {
		return err
	}
	if m.packed {
		e.w.EndLength()
	}
	return nil
}

// --- Map ---
//
// A protobuf map is wire-identical to a repeated message of (key=1,
// value=2); each entry opens its own deferred-length frame between
// MapKeyBegin and MapValueEnd.

func (e *Encoder) MapBegin(hintCount *int) error {
	if !e.started && e.w.Depth() == 0 {
		return wrapErr(0, errRootNotMessage)
	}
	fn := e.nextField
	e.nextField = 0
	if fn == 0 {
		return wrapErr(0, errNoEnclosingField)
	}
	if hintCount != nil {
		e.w.Reserve(*hintCount * 2)
	}
	e.markers = append(e.markers, marker{kind: markerMap, fieldNum: fn})
	return nil
}

func (e *Encoder) MapKeyBegin() error {
	m, err := e.topMarker(markerMap)
	if err != nil {
		return err
	}
	e.w.PushFieldTag(m.fieldNum, wire.Len)
	e.w.BeginLength(frame{kind: frameMapEntry})
	e.nextField = 1
	return nil
}

func (e *Encoder) MapKeyEnd() error { return nil }

func (e *Encoder) MapValueBegin() error {
	if _, err := e.topMarker(markerMap); err != nil {
		return err
	}
	e.nextField = 2
	return nil
}

func (e *Encoder) MapValueEnd() error {
	cur := *e.w.StateMut()
	if cur.kind != frameMapEntry {
		return wrapErr(0, ErrUnbalancedContainer)
	}
	e.w.EndLength()
	return nil
}

func (e *Encoder) MapEnd() error {
	_, err := e.popMarker(markerMap)
	return err
}

// --- Enum ---

// EnumBegin covers both protobuf enum concepts the spec unifies: a
// plain integer-valued enum label and a one-of's active variant. Root
// promotion applies here exactly as it does to messageBegin (a
// standalone oneof/enum value is a valid top-level value); the
// variant's own index, when given, always overrides whatever field
// number an enclosing record/tuple had set, which is what flattens a
// one-of's variants onto their own sibling field numbers.
func (e *Encoder) EnumBegin(label string, index *stval.Index) error {
	if !e.started && e.w.Depth() == 0 {
		e.nextField = 0
	}
	e.started = true
	if index != nil {
		e.nextField = e.fieldNumberFor(*index)
	}
	e.markers = append(e.markers, marker{kind: markerEnum})
	return nil
}

func (e *Encoder) EnumEnd(label string, index *stval.Index) error {
	_, err := e.popMarker(markerEnum)
	return err
}

// --- Tagged / Tag ---

func (e *Encoder) TaggedBegin(tag stval.Tag) error {
	switch tag {
	case TagI32:
		e.pending.i32 = true
	case TagI64:
		e.pending.i64 = true
	case TagVarintSigned:
		e.pending.varintSigned = true
	case TagLenPacked:
		e.pending.lenPacked = true
	case TagRawVarint:
		e.pending.hasRawWire = true
		e.pending.rawWire = wire.Varint
	case TagRawI32:
		e.pending.hasRawWire = true
		e.pending.rawWire = wire.I32
	case TagRawI64:
		e.pending.hasRawWire = true
		e.pending.rawWire = wire.I64
	}
	e.markers = append(e.markers, marker{kind: markerTagged, tag: tag})
	return nil
}

func (e *Encoder) TaggedEnd(tag stval.Tag) error {
	m, err := e.popMarker(markerTagged)
	if err != nil {
		return err
	}
	if m.tag != tag {
		return wrapErr(0, ErrUnbalancedContainer)
	}
	e.pending = pendingHint{}
	return nil
}

// Tag handles two standalone, payload-free markers: stval.OptionNone
// (the field is omitted entirely, per this driver's no-auto-elision
// policy: zero-valued scalars are always written, but an explicit
// OptionNone is always honored) and a tag-only enum variant. Protobuf
// enums are plain i32 values, so a tag-only variant is written as an
// integer: the variant's own index is the payload, and it lands on
// whatever field is currently active (the enclosing record field for
// a plain enum label, or the variant's own field for a one-of whose
// EnumBegin already claimed it) — never a nested message.
func (e *Encoder) Tag(tag stval.Tag, label string, index *stval.Index) error {
	if tag == stval.OptionNone {
		return e.Null()
	}
	if index != nil {
		return e.I32(index.Number)
	}
	return e.Null()
}

var _ stval.Stream = (*Encoder)(nil)
