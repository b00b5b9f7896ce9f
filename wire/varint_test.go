package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svalproto/pbstream/wire"
)

func TestVarintLenMatchesEncodedLength(t *testing.T) {
	cases := []uint64{
		0, 1, 127, 128, 16383, 16384,
		uint64(1<<32 - 2), uint64(1<<32 - 1), uint64(1 << 32),
		^uint64(0),
	}
	for _, n := range cases {
		t.Run("", func(t *testing.T) {
			got := wire.AppendVarint(nil, n)
			assert.Equal(t, len(got), wire.VarintLen(n), "n=%d", n)
		})
	}
}

func TestVarintEncodesContinuationBits(t *testing.T) {
	got := wire.AppendVarint(nil, 300)
	require.Len(t, got, 2)
	assert.Equal(t, byte(0xAC), got[0])
	assert.Equal(t, byte(0x02), got[1])
}

func TestZigZagRoundTrip(t *testing.T) {
	cases := []int64{0, -1, 1, -2, 2, -3, 3, -1 << 62, 1<<62 - 1}
	for _, n := range cases {
		got := wire.DecodeZigZag(wire.EncodeZigZag(n))
		assert.Equal(t, n, got)
	}
}

func TestZigZagCompactForSmallMagnitudes(t *testing.T) {
	// -1 and 1 should both encode in a single byte, unlike the
	// two's-complement signed varint form.
	assert.Len(t, wire.AppendZigZagVarint(nil, -1), 1)
	assert.Len(t, wire.AppendZigZagVarint(nil, 1), 1)
}

func TestSignedVarintNegativeOccupiesTenBytes(t *testing.T) {
	assert.Len(t, wire.AppendSignedVarint(nil, -1), wire.MaxVarintLen)
}
