// ABOUTME: COMM, APPL (VADPCMCODES) and SSND chunk encoders
// ABOUTME: Field layouts follow AIFF-C 1991 and the N64 VADPCM extension
package aifc

import (
	"encoding/binary"
	"fmt"
)

// Compression names the COMM compression type of an AIFF-C file.
type Compression struct {
	Type string
	Name string
}

// VADPCM is the compression used by N64 ADPCM samples
var VADPCM = Compression{Type: "VAPC", Name: "VADPCM ~4-1"}

// CommonChunk is the COMM chunk. A nil Compression produces the 18-byte
// uncompressed AIFF form.
type CommonChunk struct {
	Channels    int16
	Frames      uint32
	SampleSize  int16
	SampleRate  float64
	Compression *Compression
}

func (c *CommonChunk) ID() string { return "COMM" }

func (c *CommonChunk) Body() ([]byte, error) {
	rate, err := ToExtended80(c.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("sample rate: %w", err)
	}

	data := make([]byte, 0, 40)
	data = binary.BigEndian.AppendUint16(data, uint16(c.Channels))
	data = binary.BigEndian.AppendUint32(data, c.Frames)
	data = binary.BigEndian.AppendUint16(data, uint16(c.SampleSize))
	data = append(data, rate[:]...)

	if c.Compression == nil {
		return data, nil
	}
	if len(c.Compression.Type) != 4 {
		return nil, fmt.Errorf("%w: compression type %q", ErrInvalidChunk, c.Compression.Type)
	}
	data = append(data, c.Compression.Type...)
	return appendPString(data, c.Compression.Name)
}

// CodebookVersion is the VADPCMCODES chunk format version
const CodebookVersion = 1

// Codebook is a VADPCM predictor table in its packed big-endian form.
type Codebook struct {
	Order       int16
	NPredictors uint16
	Table       []byte
}

// Size returns the table size implied by Order and NPredictors
func (b Codebook) Size() int {
	return int(b.Order) * int(b.NPredictors) * 16
}

// CodesChunk is the APPL "stoc" VADPCMCODES chunk.
type CodesChunk struct {
	Codebook Codebook
}

func (c *CodesChunk) ID() string { return "APPL" }

func (c *CodesChunk) Body() ([]byte, error) {
	book := c.Codebook
	if book.Order < 0 || len(book.Table) != book.Size() {
		return nil, fmt.Errorf("%w: order %d, npredictors %d needs %d bytes, got %d",
			ErrCodebookSizeMismatch, book.Order, book.NPredictors, book.Size(), len(book.Table))
	}

	data := make([]byte, 0, 22+len(book.Table))
	data = append(data, "stoc"...)
	data, err := appendPString(data, "VADPCMCODES")
	if err != nil {
		return nil, err
	}
	data = binary.BigEndian.AppendUint16(data, CodebookVersion)
	data = binary.BigEndian.AppendUint16(data, uint16(book.Order))
	data = binary.BigEndian.AppendUint16(data, book.NPredictors)
	data = append(data, book.Table...)
	return data, nil
}

// SoundDataChunk is the SSND chunk.
type SoundDataChunk struct {
	Offset    uint32
	BlockSize uint32
	Data      []byte
}

func (c *SoundDataChunk) ID() string { return "SSND" }

func (c *SoundDataChunk) Body() ([]byte, error) {
	data := make([]byte, 0, 8+len(c.Data))
	data = binary.BigEndian.AppendUint32(data, c.Offset)
	data = binary.BigEndian.AppendUint32(data, c.BlockSize)
	data = append(data, c.Data...)
	return data, nil
}
