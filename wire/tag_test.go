package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/svalproto/pbstream/wire"
)

func TestTagComposition(t *testing.T) {
	tag := wire.Tag(1, wire.Varint)
	assert.EqualValues(t, 0x08, tag)

	fieldNumber, wireType := wire.DecomposeTag(tag)
	assert.EqualValues(t, 1, fieldNumber)
	assert.Equal(t, wire.Varint, wireType)
}

func TestAppendTagMatchesDecompose(t *testing.T) {
	for _, fn := range []int32{1, 2, 15, 16, 2047} {
		for _, wt := range []wire.Type{wire.Varint, wire.I64, wire.Len, wire.I32} {
			b := wire.AppendTag(nil, fn, wt)
			gotFn, gotWt := wire.DecomposeTag(func() uint64 {
				v, n := decodeVarint(b)
				assert.Equal(t, n, len(b))
				return v
			}())
			assert.Equal(t, fn, gotFn)
			assert.Equal(t, wt, gotWt)
		}
	}
}

// decodeVarint is a tiny local helper so tag_test.go does not need to
// depend on a decoder package that this module intentionally omits
// (spec Non-goals: no decoding). It only supports the small values
// this test exercises.
func decodeVarint(b []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, c := range b {
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1
		}
		shift += 7
	}
	return v, len(b)
}
