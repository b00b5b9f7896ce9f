package pbstream_test

import (
	"testing"

	"github.com/svalproto/pbstream/internal/wiretest"
	"github.com/svalproto/pbstream/pbstream"
)

func BenchmarkEncodeFlatRecord(b *testing.B) {
	v := wiretest.FlatRecord()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pbstream.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeNestedRecord(b *testing.B) {
	v := wiretest.NestedRecord()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := pbstream.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}
