package pbvalue

import "github.com/svalproto/pbstream/stval"

// Bool, I32, I64, U32, U64, F32, and F64 wrap a plain Go scalar as a
// Value, chiefly useful as elements of a hand-built sequence or map
// where each element must satisfy stval.Value on its own.
func Bool(v bool) stval.Value { return stval.ValueFunc(func(s stval.Stream) error { return s.Bool(v) }) }
func I32(v int32) stval.Value { return stval.ValueFunc(func(s stval.Stream) error { return s.I32(v) }) }
func I64(v int64) stval.Value { return stval.ValueFunc(func(s stval.Stream) error { return s.I64(v) }) }
func U32(v uint32) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error { return s.U32(v) })
}
func U64(v uint64) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error { return s.U64(v) })
}
func F32(v float32) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error { return s.F32(v) })
}
func F64(v float64) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error { return s.F64(v) })
}

// Text wraps a Go string as a single-fragment text Value.
func Text(v string) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		n := len(v)
		if err := s.TextBegin(&n); err != nil {
			return err
		}
		if err := s.TextFragment(v); err != nil {
			return err
		}
		return s.TextEnd()
	})
}

// Bytes wraps a Go byte slice as a single-fragment binary Value.
func Bytes(v []byte) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		n := len(v)
		if err := s.BinaryBegin(&n); err != nil {
			return err
		}
		if err := s.BinaryFragment(v, stval.FragmentBorrowed); err != nil {
			return err
		}
		return s.BinaryEnd()
	})
}
