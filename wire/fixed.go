package wire

import "math"

// AppendFixed32 appends the little-endian 4-byte encoding of v. This
// is the format for fixed32, sfixed32, and float fields.
func AppendFixed32(dst []byte, v uint32) []byte {
	return append(dst,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
	)
}

// AppendFixed64 appends the little-endian 8-byte encoding of v. This
// is the format for fixed64, sfixed64, and double fields.
func AppendFixed64(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56),
	)
}

// AppendFloat32 appends the IEEE-754 bit pattern of v as a fixed32.
func AppendFloat32(dst []byte, v float32) []byte {
	return AppendFixed32(dst, math.Float32bits(v))
}

// AppendFloat64 appends the IEEE-754 bit pattern of v as a fixed64.
func AppendFloat64(dst []byte, v float64) []byte {
	return AppendFixed64(dst, math.Float64bits(v))
}
