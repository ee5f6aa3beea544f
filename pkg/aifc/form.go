// ABOUTME: FORM container assembly and the top-level encoders
// ABOUTME: Encode builds VADPCM AIFC files, EncodePCM builds plain AIFF
package aifc

import (
	"encoding/binary"
	"fmt"
)

const (
	// FormAIFC is the form type of compressed containers
	FormAIFC = "AIFC"
	// FormAIFF is the form type of uncompressed containers
	FormAIFF = "AIFF"
)

// Form is a FORM container. Chunks are written in order.
type Form struct {
	Type   string
	Chunks []Chunk
}

// MarshalBinary serialises the form: "FORM", the length of everything after
// the length field, the form type, then each chunk.
func (f *Form) MarshalBinary() ([]byte, error) {
	if len(f.Type) != 4 {
		return nil, fmt.Errorf("%w: form type %q", ErrInvalidChunk, f.Type)
	}

	blocks := []byte(f.Type)
	var err error
	for _, c := range f.Chunks {
		if blocks, err = appendChunk(blocks, c); err != nil {
			return nil, err
		}
	}

	out := make([]byte, 0, 8+len(blocks))
	out = append(out, "FORM"...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(blocks)))
	return append(out, blocks...), nil
}

// FrameCount returns the number of samples a VADPCM payload decodes to;
// every 9-byte frame holds 16 samples.
func FrameCount(payloadLen int) uint32 {
	return uint32(payloadLen * 16 / 9)
}

// Encode builds a mono VADPCM AIFC container from packed frames and their
// codebook. It does no I/O.
func Encode(sampleRate float64, payload []byte, book Codebook) ([]byte, error) {
	form := &Form{
		Type: FormAIFC,
		Chunks: []Chunk{
			&CommonChunk{
				Channels:    1,
				Frames:      FrameCount(len(payload)),
				SampleSize:  16,
				SampleRate:  sampleRate,
				Compression: &VADPCM,
			},
			&CodesChunk{Codebook: book},
			&SoundDataChunk{Data: payload},
		},
	}
	return form.MarshalBinary()
}

// EncodePCM builds an uncompressed AIFF container from big-endian PCM.
func EncodePCM(sampleRate float64, channels, bitDepth int, data []byte) ([]byte, error) {
	if channels <= 0 || bitDepth <= 0 || bitDepth%8 != 0 {
		return nil, fmt.Errorf("unsupported PCM layout: %d channels, %d bits", channels, bitDepth)
	}
	frameSize := channels * bitDepth / 8

	form := &Form{
		Type: FormAIFF,
		Chunks: []Chunk{
			&CommonChunk{
				Channels:   int16(channels),
				Frames:     uint32(len(data) / frameSize),
				SampleSize: int16(bitDepth),
				SampleRate: sampleRate,
			},
			&SoundDataChunk{Data: data},
		},
	}
	return form.MarshalBinary()
}
