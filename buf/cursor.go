package buf

import "github.com/svalproto/pbstream/wire"

// Cursor is a pull-mode reader over a Message's logical bytes. It
// exposes the underlying chunks of the message (a run of borrowed
// bytes, a computed varint length prefix, a run of borrowed bytes,
// ...) without ever concatenating them, so a caller that can consume
// fragments incrementally (for example streaming a message onto a
// socket) never pays for the ToVec copy.
//
// A Cursor holds exclusive state and must not be used from more than
// one goroutine at a time.
type Cursor struct {
	msg *Message

	// from is the next byte offset to read out of msg.buf for the
	// current borrowed span.
	from int
	// chunkIdx is the chunk entry that bounds the current borrowed
	// span (or, while inVarint is true, the entry whose prefix is
	// currently being emitted).
	chunkIdx int

	inVarint  bool
	varintBuf [wire.MaxVarintLen]byte
	varintLen int
	varintPos int

	remaining int
}

// IntoCursor consumes no state from m (Message is immutable) and
// returns a new Cursor positioned at the start of its logical bytes.
func (m *Message) IntoCursor() *Cursor {
	c := &Cursor{msg: m, remaining: m.Len()}
	c.skipEmptyPhases()
	return c
}

// borrowedEnd returns the offset where the current borrowed span
// ends: either the next unresolved chunk boundary or the end of the
// buffer.
func (c *Cursor) borrowedEnd() int {
	if c.chunkIdx < len(c.msg.chunks) {
		return c.msg.chunks[c.chunkIdx].offset
	}
	return len(c.msg.buf)
}

// Chunk returns the next run of bytes the cursor is positioned at,
// without consuming it. It returns an empty slice once the cursor is
// exhausted.
func (c *Cursor) Chunk() []byte {
	if c.inVarint {
		return c.varintBuf[c.varintPos:c.varintLen]
	}
	return c.msg.buf[c.from:c.borrowedEnd()]
}

// Remaining returns the number of logical bytes not yet consumed.
func (c *Cursor) Remaining() int {
	return c.remaining
}

// Advance consumes n bytes, rolling across chunk boundaries as
// needed. It panics if n exceeds Remaining: advancing past the end of
// a Message is a programmer error, not a recoverable condition.
func (c *Cursor) Advance(n int) {
	if n > c.remaining {
		panic("buf: Cursor.Advance past end of message")
	}
	for n > 0 {
		cur := c.Chunk()
		take := n
		if take > len(cur) {
			take = len(cur)
		}
		if c.inVarint {
			c.varintPos += take
		} else {
			c.from += take
		}
		c.remaining -= take
		n -= take
		c.skipEmptyPhases()
	}
}

// skipEmptyPhases rolls the cursor through any exhausted borrowed or
// computed span so that Chunk() never returns a stale empty slice
// while bytes remain.
func (c *Cursor) skipEmptyPhases() {
	for c.remaining > 0 && len(c.Chunk()) == 0 {
		if c.inVarint {
			c.inVarint = false
			c.chunkIdx++
			continue
		}
		entry := c.msg.chunks[c.chunkIdx]
		v := wire.AppendVarint(c.varintBuf[:0], entry.value)
		c.varintLen = len(v)
		c.varintPos = 0
		c.inVarint = true
	}
}

// CopyToVec appends every remaining chunk to dst, in order, advancing
// the cursor to the end. The result is byte-identical to the source
// Message's ToVec.
func (c *Cursor) CopyToVec(dst []byte) []byte {
	for c.remaining > 0 {
		cur := c.Chunk()
		dst = append(dst, cur...)
		c.Advance(len(cur))
	}
	return dst
}
