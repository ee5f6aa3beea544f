// ABOUTME: Audio type definitions
// ABOUTME: Defines sample formats, decoded buffers and the VADPCM codec header
package audio

import (
	"encoding/binary"
	"fmt"
)

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Codec names
const (
	CodecPCM    = "pcm"
	CodecVADPCM = "vadpcm"
)

// Format describes a sample's format
type Format struct {
	Codec       string
	SampleRate  int
	Channels    int
	BitDepth    int
	CodecHeader []byte // VADPCM: see CodebookHeader
}

// Buffer holds decoded PCM audio
type Buffer struct {
	Samples []int32 // left-justified in 24-bit range
	Format  Format
}

// Frames returns the number of sample frames in the buffer
func (b Buffer) Frames() int {
	if b.Format.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Format.Channels
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit output)
func SampleToInt16(sample int32) int16 {
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	return int32(sample) << 8
}

// ClampInt16 saturates v to the int16 range
func ClampInt16(v int64) int16 {
	if v > 0x7FFF {
		return 0x7FFF
	}
	if v < -0x8000 {
		return -0x8000
	}
	return int16(v)
}

// CodebookHeader packs a VADPCM codebook for Format.CodecHeader:
// s16 order, u16 npredictors, then the big-endian coefficient table.
func CodebookHeader(order int16, npredictors uint16, table []byte) []byte {
	out := make([]byte, 4, 4+len(table))
	binary.BigEndian.PutUint16(out[0:], uint16(order))
	binary.BigEndian.PutUint16(out[2:], npredictors)
	return append(out, table...)
}

// ParseCodebookHeader unpacks a header built by CodebookHeader into
// order, npredictors and order*npredictors*8 coefficients.
func ParseCodebookHeader(header []byte) (int, int, []int16, error) {
	if len(header) < 4 {
		return 0, 0, nil, fmt.Errorf("codebook header too short: %d bytes", len(header))
	}

	order := int(int16(binary.BigEndian.Uint16(header[0:])))
	npredictors := int(binary.BigEndian.Uint16(header[2:]))
	table := header[4:]

	if order < 0 || len(table) != order*npredictors*16 {
		return 0, 0, nil, fmt.Errorf("codebook table is %d bytes, expected %d for order %d with %d predictors",
			len(table), order*npredictors*16, order, npredictors)
	}

	coefs := make([]int16, len(table)/2)
	for i := range coefs {
		coefs[i] = int16(binary.BigEndian.Uint16(table[i*2:]))
	}
	return order, npredictors, coefs, nil
}
