// ABOUTME: Diagnostic layout dump for reverse engineering bank files
// ABOUTME: Prints records in offset order, checks alignment padding, shows gaps
package albank

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/bits"
)

// recordAlignment is the alignment the bank compiler pads records to.
const recordAlignment = 8

// Dump writes every record in offset order. Bytes between the end of one
// record and the next 8-byte boundary must be zero; any other uncovered
// range is printed as a raw gap, as are trailing bytes after the last record.
func (g *Graph) Dump(w io.Writer) error {
	offset := 0
	for _, item := range g.Items() {
		start := int(item.Offset)

		aligned := (offset + recordAlignment - 1) &^ (recordAlignment - 1)
		padEnd := min(aligned, start)
		for i := offset; i < padEnd; i++ {
			if g.buf[i] != 0 {
				return &OffsetError{
					Offset: uint32(i),
					Kind:   item.Kind,
					Err:    fmt.Errorf("%w: 0x%02X before record at 0x%X", ErrNonZeroPadding, g.buf[i], start),
				}
			}
		}
		if padEnd > offset {
			offset = padEnd
		}

		if offset < start {
			if _, err := fmt.Fprintf(w, "\n/* 0x%X */\nBytes\n%s", offset, hex.Dump(g.buf[offset:start])); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "\n/* 0x%X */\n%s %+v\n", start, item.Kind, item.Value); err != nil {
			return err
		}
		offset = start + item.Size
	}

	if offset < len(g.buf) {
		if _, err := fmt.Fprintf(w, "\n/* 0x%X */\n%s", offset, hex.Dump(g.buf[offset:])); err != nil {
			return err
		}
	}
	return nil
}

// KindAlignment is the largest power-of-two alignment (as a bit count, up to
// 16) shared by every record of a kind.
type KindAlignment struct {
	Kind Kind
	Bits int
}

// Alignments reports per-kind alignment in order of first registration.
// The root at offset 0 does not constrain its kind.
func (g *Graph) Alignments() []KindAlignment {
	var out []KindAlignment
	pos := make(map[Kind]int)
	for _, item := range g.items {
		i, seen := pos[item.Kind]
		if !seen {
			i = len(out)
			pos[item.Kind] = i
			out = append(out, KindAlignment{Kind: item.Kind, Bits: 16})
		}
		if item.Offset == 0 {
			continue
		}
		if tz := bits.TrailingZeros32(item.Offset); tz < out[i].Bits {
			out[i].Bits = tz
		}
	}
	return out
}
