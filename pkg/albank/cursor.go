// ABOUTME: Big-endian read cursor over the bank buffer
// ABOUTME: Keeps the first read error so decoders check once per phase
package albank

import (
	"encoding/binary"
	"fmt"
)

type cursor struct {
	buf []byte
	pos int
	err error
}

func newCursor(buf []byte, offset uint32) *cursor {
	return &cursor{buf: buf, pos: int(offset)}
}

func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || c.pos+n > len(c.buf) {
		c.err = fmt.Errorf("%w: need %d bytes at 0x%X, buffer is 0x%X bytes", ErrTruncatedBuffer, n, c.pos, len(c.buf))
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) s8() int8 {
	return int8(c.u8())
}

func (c *cursor) s16() int16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return int16(binary.BigEndian.Uint16(b))
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (c *cursor) s32() int32 {
	return int32(c.u32())
}

// offsets reads count u32 values
func (c *cursor) offsets(count int) []uint32 {
	out := make([]uint32, 0, count)
	for i := 0; i < count && c.err == nil; i++ {
		out = append(out, c.u32())
	}
	return out
}
