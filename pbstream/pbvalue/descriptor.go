package pbvalue

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/svalproto/pbstream/pbstream"
	"github.com/svalproto/pbstream/stval"
)

// FromProtoReflect adapts any google.golang.org/protobuf message into
// a stval.Value by walking its reflective field set. This exists for
// interop and oracle testing: a message built or decoded through the
// generated-code path can be re-streamed through this module's own
// encoder and the two outputs compared byte for byte.
func FromProtoReflect(m protoreflect.Message) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		return streamMessage(s, m)
	})
}

func streamMessage(s stval.Stream, m protoreflect.Message) error {
	if err := s.RecordBegin(string(m.Descriptor().Name()), nil); err != nil {
		return err
	}
	var rangeErr error
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		idx := stval.ExplicitIndex(int32(fd.Number()))
		if err := s.RecordValueBegin(string(fd.Name()), idx); err != nil {
			rangeErr = err
			return false
		}
		if err := streamFieldValue(s, fd, v); err != nil {
			rangeErr = err
			return false
		}
		rangeErr = s.RecordValueEnd()
		return rangeErr == nil
	})
	if rangeErr != nil {
		return rangeErr
	}
	return s.RecordEnd()
}

func streamFieldValue(s stval.Stream, fd protoreflect.FieldDescriptor, v protoreflect.Value) error {
	switch {
	case fd.IsMap():
		mp := v.Map()
		n := mp.Len()
		if err := s.MapBegin(&n); err != nil {
			return err
		}
		var rangeErr error
		mp.Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			if err := s.MapKeyBegin(); err != nil {
				rangeErr = err
				return false
			}
			if err := streamScalar(s, fd.MapKey(), k.Value()); err != nil {
				rangeErr = err
				return false
			}
			if err := s.MapKeyEnd(); err != nil {
				rangeErr = err
				return false
			}
			if err := s.MapValueBegin(); err != nil {
				rangeErr = err
				return false
			}
			if err := streamFieldValue(s, fd.MapValue(), mv); err != nil {
				rangeErr = err
				return false
			}
			rangeErr = s.MapValueEnd()
			return rangeErr == nil
		})
		if rangeErr != nil {
			return rangeErr
		}
		return s.MapEnd()
	case fd.IsList():
		list := v.List()
		n := list.Len()
		if err := s.SeqBegin(&n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := s.SeqValueBegin(); err != nil {
				return err
			}
			if err := streamScalar(s, fd, list.Get(i)); err != nil {
				return err
			}
			if err := s.SeqValueEnd(); err != nil {
				return err
			}
		}
		return s.SeqEnd()
	default:
		return streamScalar(s, fd, v)
	}
}

func streamScalar(s stval.Stream, fd protoreflect.FieldDescriptor, v protoreflect.Value) error {
	switch fd.Kind() {
	case protoreflect.BoolKind:
		return s.Bool(v.Bool())
	case protoreflect.Int32Kind:
		return s.I32(int32(v.Int()))
	case protoreflect.Sint32Kind:
		return wrapTag(s, pbstream.TagVarintSigned, func() error { return s.I32(int32(v.Int())) })
	case protoreflect.Sfixed32Kind:
		return wrapTag(s, pbstream.TagI32, func() error { return s.I32(int32(v.Int())) })
	case protoreflect.Int64Kind:
		return s.I64(v.Int())
	case protoreflect.Sint64Kind:
		return wrapTag(s, pbstream.TagVarintSigned, func() error { return s.I64(v.Int()) })
	case protoreflect.Sfixed64Kind:
		return wrapTag(s, pbstream.TagI64, func() error { return s.I64(v.Int()) })
	case protoreflect.Uint32Kind:
		return s.U32(uint32(v.Uint()))
	case protoreflect.Fixed32Kind:
		return wrapTag(s, pbstream.TagI32, func() error { return s.U32(uint32(v.Uint())) })
	case protoreflect.Uint64Kind:
		return s.U64(v.Uint())
	case protoreflect.Fixed64Kind:
		return wrapTag(s, pbstream.TagI64, func() error { return s.U64(v.Uint()) })
	case protoreflect.FloatKind:
		return s.F32(float32(v.Float()))
	case protoreflect.DoubleKind:
		return s.F64(v.Float())
	case protoreflect.StringKind:
		str := v.String()
		n := len(str)
		if err := s.TextBegin(&n); err != nil {
			return err
		}
		if err := s.TextFragment(str); err != nil {
			return err
		}
		return s.TextEnd()
	case protoreflect.BytesKind:
		b := v.Bytes()
		n := len(b)
		if err := s.BinaryBegin(&n); err != nil {
			return err
		}
		if err := s.BinaryFragment(b, stval.FragmentBorrowed); err != nil {
			return err
		}
		return s.BinaryEnd()
	case protoreflect.EnumKind:
		return s.I32(int32(v.Enum()))
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return streamMessage(s, v.Message())
	default:
		return fmt.Errorf("pbvalue: unsupported proto kind %s", fd.Kind())
	}
}

func wrapTag(s stval.Stream, tag stval.Tag, f func() error) error {
	if err := s.TaggedBegin(tag); err != nil {
		return err
	}
	if err := f(); err != nil {
		return err
	}
	return s.TaggedEnd(tag)
}
