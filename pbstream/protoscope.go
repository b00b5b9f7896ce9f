package pbstream

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/wire"
)

// Dump renders an encoded message as an indented, protoscope-like
// listing of (field number, wire type, value) triples, for debugging
// and test failure output. It is read-only, best-effort, and not a
// decoder: LEN fields that don't look like valid UTF-8 text are shown
// as hex, and a LEN field that happens to parse as a nested message is
// shown that way only if it does so without leftover bytes. Dump never
// fails; malformed input is reported inline rather than returned as an
// error, since its only purpose is to be read by a human.
func Dump(msg *buf.Message) string {
	var b strings.Builder
	dumpBytes(&b, msg.ToVec(), 0)
	return b.String()
}

func dumpBytes(b *strings.Builder, data []byte, indent int) {
	pad := strings.Repeat("  ", indent)
	for len(data) > 0 {
		tag, n := consumeVarint(data)
		if n == 0 {
			fmt.Fprintf(b, "%s<truncated tag>\n", pad)
			return
		}
		data = data[n:]
		fieldNum, wt := wire.DecomposeTag(tag)

		switch wt {
		case wire.Varint:
			v, n := consumeVarint(data)
			if n == 0 {
				fmt.Fprintf(b, "%s%d: <truncated varint>\n", pad, fieldNum)
				return
			}
			data = data[n:]
			fmt.Fprintf(b, "%s%d: %d\n", pad, fieldNum, v)
		case wire.I32:
			if len(data) < 4 {
				fmt.Fprintf(b, "%s%d: <truncated i32>\n", pad, fieldNum)
				return
			}
			fmt.Fprintf(b, "%s%d: i32:%#x\n", pad, fieldNum, le32(data))
			data = data[4:]
		case wire.I64:
			if len(data) < 8 {
				fmt.Fprintf(b, "%s%d: <truncated i64>\n", pad, fieldNum)
				return
			}
			fmt.Fprintf(b, "%s%d: i64:%#x\n", pad, fieldNum, le64(data))
			data = data[8:]
		case wire.Len:
			ln, n := consumeVarint(data)
			if n == 0 || uint64(len(data)-n) < ln {
				fmt.Fprintf(b, "%s%d: <truncated len>\n", pad, fieldNum)
				return
			}
			data = data[n:]
			payload := data[:ln]
			data = data[ln:]
			dumpLen(b, fieldNum, payload, indent, pad)
		default:
			fmt.Fprintf(b, "%s%d: <unsupported wire type %s>\n", pad, fieldNum, wt)
			return
		}
	}
}

func dumpLen(b *strings.Builder, fieldNum int32, payload []byte, indent int, pad string) {
	if looksLikeMessage(payload) {
		fmt.Fprintf(b, "%s%d: {\n", pad, fieldNum)
		dumpBytes(b, payload, indent+1)
		fmt.Fprintf(b, "%s}\n", pad)
		return
	}
	if utf8.Valid(payload) {
		fmt.Fprintf(b, "%s%d: %s\n", pad, fieldNum, strconv.Quote(string(payload)))
		return
	}
	fmt.Fprintf(b, "%s%d: %x\n", pad, fieldNum, payload)
}

// looksLikeMessage is a heuristic: payload parses cleanly as a
// sequence of well-formed tag/value pairs with nothing left over.
func looksLikeMessage(payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	data := payload
	for len(data) > 0 {
		tag, n := consumeVarint(data)
		if n == 0 {
			return false
		}
		data = data[n:]
		_, wt := wire.DecomposeTag(tag)
		switch wt {
		case wire.Varint:
			_, n := consumeVarint(data)
			if n == 0 {
				return false
			}
			data = data[n:]
		case wire.I32:
			if len(data) < 4 {
				return false
			}
			data = data[4:]
		case wire.I64:
			if len(data) < 8 {
				return false
			}
			data = data[8:]
		case wire.Len:
			ln, n := consumeVarint(data)
			if n == 0 || uint64(len(data)-n) < ln {
				return false
			}
			data = data[n+int(ln):]
		default:
			return false
		}
	}
	return true
}

func consumeVarint(data []byte) (uint64, int) {
	var v uint64
	for i := 0; i < wire.MaxVarintLen && i < len(data); i++ {
		b := data[i]
		v |= uint64(b&0x7f) << (7 * i)
		if b < 0x80 {
			return v, i + 1
		}
	}
	return 0, 0
}

func le32(data []byte) uint32 {
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
}

func le64(data []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(data[i])
	}
	return v
}
