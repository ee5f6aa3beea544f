// ABOUTME: PCM audio encoder
// ABOUTME: Encodes int32 samples to 16-bit PCM bytes in either byte order
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio"
)

// PCMEncoder encodes PCM audio
type PCMEncoder struct {
	order binary.ByteOrder
}

// NewPCM creates a little-endian PCM encoder, the layout audio devices take
func NewPCM(format audio.Format) (Encoder, error) {
	return NewPCMWithOrder(format, binary.LittleEndian)
}

// NewPCMBigEndian creates a big-endian PCM encoder for AIFF sound data
func NewPCMBigEndian(format audio.Format) (Encoder, error) {
	return NewPCMWithOrder(format, binary.BigEndian)
}

// NewPCMWithOrder creates a PCM encoder writing samples in the given order
func NewPCMWithOrder(format audio.Format, order binary.ByteOrder) (Encoder, error) {
	if format.Codec != audio.CodecPCM {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16)", format.BitDepth)
	}

	return &PCMEncoder{
		order: order,
	}, nil
}

// Encode converts int32 samples to 16-bit PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		e.order.PutUint16(output[i*2:], uint16(audio.SampleToInt16(sample)))
	}
	return output, nil
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}
