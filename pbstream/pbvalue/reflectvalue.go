package pbvalue

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	goreflect "github.com/goccy/go-reflect"

	"github.com/svalproto/pbstream/stval"
)

// ReflectOption configures FromReflect.
type ReflectOption func(*reflectOptions)

type reflectOptions struct {
	deterministicMaps bool
}

// WithDeterministicMaps sorts a reflected Go map's keys (by their
// string representation) before streaming it, so repeated encodes of
// the same map produce identical bytes. Off by default, since sorting
// costs something and most callers don't compare encodings byte for
// byte.
func WithDeterministicMaps() ReflectOption {
	return func(o *reflectOptions) { o.deterministicMaps = true }
}

// FromReflect wraps an arbitrary Go value as a stval.Value, walking it
// with reflection instead of a hand-written Stream method. Struct
// fields are numbered positionally in declaration order unless tagged
// `pbstream:"N"`; unexported fields and zero-valued fields are
// skipped, mirroring how encoding/json treats `omitempty`. goccy/go-reflect
// backs the walk since it resolves struct field access without the
// allocation standard reflect.Value.Interface() would otherwise cost
// on every leaf.
func FromReflect(v any, opts ...ReflectOption) stval.Value {
	var o reflectOptions
	for _, opt := range opts {
		opt(&o)
	}
	return stval.ValueFunc(func(s stval.Stream) error {
		return streamReflect(s, goreflect.ValueOf(v), o)
	})
}

func streamReflect(s stval.Stream, rv reflect.Value, o reflectOptions) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return s.Tag(stval.OptionNone, "", nil)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return s.Bool(rv.Bool())
	case reflect.Int32:
		return s.I32(int32(rv.Int()))
	case reflect.Int, reflect.Int64, reflect.Int16, reflect.Int8:
		return s.I64(rv.Int())
	case reflect.Uint32:
		return s.U32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uint16, reflect.Uint8, reflect.Uintptr:
		return s.U64(rv.Uint())
	case reflect.Float32:
		return s.F32(float32(rv.Float()))
	case reflect.Float64:
		return s.F64(rv.Float())
	case reflect.String:
		v := rv.String()
		n := len(v)
		if err := s.TextBegin(&n); err != nil {
			return err
		}
		if err := s.TextFragment(v); err != nil {
			return err
		}
		return s.TextEnd()
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			b := rv.Bytes()
			n := len(b)
			if err := s.BinaryBegin(&n); err != nil {
				return err
			}
			if err := s.BinaryFragment(b, stval.FragmentBorrowed); err != nil {
				return err
			}
			return s.BinaryEnd()
		}
		return streamSeq(s, rv, o)
	case reflect.Map:
		return streamMap(s, rv, o)
	case reflect.Struct:
		return streamStruct(s, rv, o)
	default:
		return fmt.Errorf("pbvalue: unsupported reflect kind %s", rv.Kind())
	}
}

func streamSeq(s stval.Stream, rv reflect.Value, o reflectOptions) error {
	n := rv.Len()
	if err := s.SeqBegin(&n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := s.SeqValueBegin(); err != nil {
			return err
		}
		if err := streamReflect(s, rv.Index(i), o); err != nil {
			return err
		}
		if err := s.SeqValueEnd(); err != nil {
			return err
		}
	}
	return s.SeqEnd()
}

func streamMap(s stval.Stream, rv reflect.Value, o reflectOptions) error {
	keys := rv.MapKeys()
	if o.deterministicMaps {
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
	}
	n := len(keys)
	if err := s.MapBegin(&n); err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.MapKeyBegin(); err != nil {
			return err
		}
		if err := streamReflect(s, k, o); err != nil {
			return err
		}
		if err := s.MapKeyEnd(); err != nil {
			return err
		}
		if err := s.MapValueBegin(); err != nil {
			return err
		}
		if err := streamReflect(s, rv.MapIndex(k), o); err != nil {
			return err
		}
		if err := s.MapValueEnd(); err != nil {
			return err
		}
	}
	return s.MapEnd()
}

func streamStruct(s stval.Stream, rv reflect.Value, o reflectOptions) error {
	t := rv.Type()
	if err := s.RecordBegin(t.Name(), nil); err != nil {
		return err
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if isEmptyValue(fv) {
			continue
		}
		idx := fieldIndex(f, i)
		if err := s.RecordValueBegin(f.Name, idx); err != nil {
			return err
		}
		if err := streamReflect(s, fv, o); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}
	}
	return s.RecordEnd()
}

func fieldIndex(f reflect.StructField, pos int) stval.Index {
	if tag, ok := f.Tag.Lookup("pbstream"); ok {
		if n, err := strconv.Atoi(tag); err == nil {
			return stval.ExplicitIndex(int32(n))
		}
	}
	return stval.FromPositionIndex(pos)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
