// ABOUTME: Helpers for building bank files in tests
// ABOUTME: Writes big-endian fields at fixed offsets and provides a fixture bank
package albanktest

import "encoding/binary"

// Builder writes big-endian values into a zeroed buffer.
type Builder struct {
	buf []byte
	pos int
}

// NewBuilder creates a builder over size zero bytes
func NewBuilder(size int) *Builder {
	return &Builder{buf: make([]byte, size)}
}

// At moves the write position
func (b *Builder) At(offset int) *Builder {
	b.pos = offset
	return b
}

func (b *Builder) U8(vs ...uint8) *Builder {
	for _, v := range vs {
		b.buf[b.pos] = v
		b.pos++
	}
	return b
}

func (b *Builder) S16(vs ...int16) *Builder {
	for _, v := range vs {
		binary.BigEndian.PutUint16(b.buf[b.pos:], uint16(v))
		b.pos += 2
	}
	return b
}

func (b *Builder) U32(vs ...uint32) *Builder {
	for _, v := range vs {
		binary.BigEndian.PutUint32(b.buf[b.pos:], v)
		b.pos += 4
	}
	return b
}

func (b *Builder) S32(vs ...int32) *Builder {
	for _, v := range vs {
		binary.BigEndian.PutUint32(b.buf[b.pos:], uint32(v))
		b.pos += 4
	}
	return b
}

// Bytes returns the buffer
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Offsets of the records in TwoSampleBank
const (
	Bank       = 0x10
	Instrument = 0x20
	SoundA     = 0x40
	SoundB     = 0x60
	Envelope   = 0x80
	KeyMap     = 0x90
	WaveA      = 0xA0
	WaveB      = 0xC0
	Book       = 0xE0
)

// TBLSize is the sample file size TwoSampleBank's wave tables span.
const TBLSize = 27

// TwoSampleBank returns a bank with one instrument (program 0) holding two
// sounds. WaveA (base 0, 18 bytes) has an order 2 single-predictor codebook
// of zero coefficients; WaveB (base 0x12, 9 bytes) has no codebook.
func TwoSampleBank() []byte {
	b := NewBuilder(0x110)

	b.At(0).S16(1, 1).U32(Bank)
	b.At(Bank).S16(1).U8(0, 0).S32(22050).U32(0, Instrument)

	b.At(Instrument).U8(127, 64, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0).S16(200, 2).U32(SoundA, SoundB)
	b.At(SoundA).U32(Envelope, KeyMap, WaveA).U8(64, 127, 0)
	b.At(SoundB).U32(Envelope, KeyMap, WaveB).U8(64, 100, 0)

	b.At(Envelope).S32(1000, 2000, 3000).U8(127, 100)
	b.At(KeyMap).U8(0, 127, 0, 127, 60, 0)

	b.At(WaveA).U32(0).S32(18).U8(0, 0, 0, 0).U32(0, Book)
	b.At(WaveB).U32(0x12).S32(9).U8(0, 0, 0, 0).U32(0, 0)

	b.At(Book).S32(2, 1)
	return b.Bytes()
}
