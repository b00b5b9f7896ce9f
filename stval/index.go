package stval

// Index identifies the position of a record/tuple field or an enum
// variant. Number is the raw index value as the value reports it;
// FromPosition distinguishes a zero-based positional index (the
// value enumerated its fields in order and never overrode one) from
// an explicitly assigned index (the value knows its own field/variant
// numbers and they need no further adjustment).
//
// A consumer like the protobuf driver treats these differently: a
// positional index is shifted by one to land on protobuf's 1-based
// field numbering, while an explicit index is taken verbatim.
type Index struct {
	Number       int32
	FromPosition bool
}

// FromPositionIndex builds an Index for the nth (zero-based) field or
// variant of a record, tuple, or enum.
func FromPositionIndex(n int) Index {
	return Index{Number: int32(n), FromPosition: true}
}

// ExplicitIndex builds an Index for a caller-assigned field or
// variant number, taken verbatim with no positional adjustment.
func ExplicitIndex(n int32) Index {
	return Index{Number: n, FromPosition: false}
}
