// Package wiretest holds structured-value fixtures shared by
// benchmarks and tests across the module: building the same nested
// shape by hand in every _test.go file would drown the interesting
// part of each test in boilerplate.
package wiretest

import (
	"github.com/svalproto/pbstream/pbstream/pbvalue"
	"github.com/svalproto/pbstream/stval"
)

// FlatRecord is a small record with a handful of scalar fields, no
// nesting: the cheapest realistic shape to encode.
func FlatRecord() stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		if err := s.RecordBegin("Flat", nil); err != nil {
			return err
		}
		fields := []struct {
			n int32
			v stval.Value
		}{
			{1, pbvalue.I32(42)},
			{2, pbvalue.Text("hello")},
			{3, pbvalue.Bool(true)},
			{4, pbvalue.F64(3.25)},
		}
		for _, f := range fields {
			if err := s.RecordValueBegin("", stval.ExplicitIndex(f.n)); err != nil {
				return err
			}
			if err := f.v.Stream(s); err != nil {
				return err
			}
			if err := s.RecordValueEnd(); err != nil {
				return err
			}
		}
		return s.RecordEnd()
	})
}

// attribute is one (key, int value) pair, nested two levels deep: the
// shape a span's attribute list takes in an OpenTelemetry-style trace.
func attribute(key string, val int64) stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		if err := s.RecordBegin("KeyValue", nil); err != nil {
			return err
		}
		if err := s.RecordValueBegin("key", stval.ExplicitIndex(1)); err != nil {
			return err
		}
		if err := pbvalue.Text(key).Stream(s); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}
		if err := s.RecordValueBegin("value", stval.ExplicitIndex(2)); err != nil {
			return err
		}
		if err := pbvalue.I64(val).Stream(s); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}
		return s.RecordEnd()
	})
}

// NestedRecord is a span-shaped record: scalar fields plus a repeated
// submessage field (attributes), three levels deep overall.
func NestedRecord() stval.Value {
	return stval.ValueFunc(func(s stval.Stream) error {
		if err := s.RecordBegin("Span", nil); err != nil {
			return err
		}
		if err := s.RecordValueBegin("name", stval.ExplicitIndex(1)); err != nil {
			return err
		}
		if err := pbvalue.Text("GET /widgets").Stream(s); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}

		if err := s.RecordValueBegin("attributes", stval.ExplicitIndex(2)); err != nil {
			return err
		}
		attrs := []stval.Value{
			attribute("http.method", 1),
			attribute("http.status_code", 200),
			attribute("retry.count", 0),
		}
		n := len(attrs)
		if err := s.SeqBegin(&n); err != nil {
			return err
		}
		for _, a := range attrs {
			if err := s.SeqValueBegin(); err != nil {
				return err
			}
			if err := a.Stream(s); err != nil {
				return err
			}
			if err := s.SeqValueEnd(); err != nil {
				return err
			}
		}
		if err := s.SeqEnd(); err != nil {
			return err
		}
		if err := s.RecordValueEnd(); err != nil {
			return err
		}

		return s.RecordEnd()
	})
}
