package wire

import "math/bits"

// MaxVarintLen is the largest number of bytes a 64-bit varint can
// occupy (the two's-complement encoding of a negative int64).
const MaxVarintLen = 10

// AppendVarint appends the unsigned varint encoding of v to dst and
// returns the extended slice. This is the format used for bool,
// uint32, uint64, and (via the two's-complement convention) the
// non-zig-zag signed integer types.
func AppendVarint(dst []byte, v uint64) []byte {
	for v >= 1<<7 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendSignedVarint appends the two's-complement varint encoding of
// a signed value: negative numbers are reinterpreted as the uint64
// with the same bit pattern, so they always occupy the full 10 bytes.
func AppendSignedVarint(dst []byte, v int64) []byte {
	return AppendVarint(dst, uint64(v))
}

// AppendZigZagVarint appends the zig-zag varint encoding of a signed
// value: small magnitudes, positive or negative, stay compact.
func AppendZigZagVarint(dst []byte, v int64) []byte {
	return AppendVarint(dst, EncodeZigZag(v))
}

// EncodeZigZag maps a signed integer to an unsigned one so that small
// absolute values (in either direction) produce small varints:
// 0, -1, 1, -2, 2, ... map to 0, 1, 2, 3, 4, ...
func EncodeZigZag(v int64) uint64 {
	return (uint64(v) << 1) ^ uint64(v>>63)
}

// DecodeZigZag reverses EncodeZigZag.
func DecodeZigZag(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// VarintLen returns the number of bytes AppendVarint would produce for
// v, without actually encoding it. It is a closed-form bit trick
// equivalent to counting 7-bit groups: the number of groups is
// floor(h/7)+1, where h is the index of the highest set bit of v|1,
// computed here via a leading-zero count to avoid a loop.
func VarintLen(v uint64) int {
	lz := bits.LeadingZeros64(v | 1)
	return (((lz ^ 63) * 9) + 73) / 64
}
