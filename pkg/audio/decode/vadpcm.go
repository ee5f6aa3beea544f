// ABOUTME: VADPCM audio decoder
// ABOUTME: Decodes N64 ADPCM frames to int32 samples using a predictor codebook
package decode

import (
	"errors"
	"fmt"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio"
)

const (
	// FrameBytes is the size of one encoded VADPCM frame
	FrameBytes = 9
	// FrameSamples is the number of samples in one frame
	FrameSamples = 16

	maxOrder = 8
)

// ErrPredictorOutOfRange means a frame selects a predictor the codebook lacks
var ErrPredictorOutOfRange = errors.New("predictor index out of range")

// VADPCMDecoder decodes VADPCM frames. Decoder state carries over between
// calls to Decode so a payload can be fed in pieces.
type VADPCMDecoder struct {
	order int
	// table[p][k] is the (order+8)-wide row producing output sample k of a
	// half frame with predictor p.
	table [][8][]int32
	state [FrameSamples]int32
	in    []int32
}

// NewVADPCM creates a VADPCM decoder from a Format carrying its codebook.
func NewVADPCM(format audio.Format) (Decoder, error) {
	if format.Codec != audio.CodecVADPCM {
		return nil, fmt.Errorf("invalid codec for VADPCM decoder: %s", format.Codec)
	}
	if format.Channels != 1 {
		return nil, fmt.Errorf("unsupported channel count: %d (VADPCM is mono)", format.Channels)
	}

	order, npredictors, coefs, err := audio.ParseCodebookHeader(format.CodecHeader)
	if err != nil {
		return nil, fmt.Errorf("invalid codebook: %w", err)
	}
	if order < 1 || order > maxOrder {
		return nil, fmt.Errorf("unsupported predictor order: %d (supported: 1-%d)", order, maxOrder)
	}
	if npredictors < 1 {
		return nil, fmt.Errorf("codebook has no predictors")
	}

	return &VADPCMDecoder{
		order: order,
		table: expandCodebook(order, npredictors, coefs),
		in:    make([]int32, order+8),
	}, nil
}

// expandCodebook builds, for every predictor, the matrix that maps the last
// order outputs plus eight scaled residuals onto eight new outputs.
func expandCodebook(order, npredictors int, coefs []int16) [][8][]int32 {
	table := make([][8][]int32, npredictors)
	for p := range table {
		rows := &table[p]
		for k := range rows {
			rows[k] = make([]int32, order+8)
		}

		base := p * order * 8
		for j := 0; j < order; j++ {
			for k := 0; k < 8; k++ {
				rows[k][j] = int32(coefs[base+j*8+k])
			}
		}

		rows[0][order] = 1 << 11
		for k := 1; k < 8; k++ {
			rows[k][order] = rows[k-1][order-1]
		}

		for c := 1; c < 8; c++ {
			for k := c; k < 8; k++ {
				rows[k][order+c] = rows[k-c][order]
			}
		}
	}
	return table
}

// Decode converts whole 9-byte frames to samples. Trailing bytes that do not
// form a complete frame are ignored.
func (d *VADPCMDecoder) Decode(data []byte) ([]int32, error) {
	frames := len(data) / FrameBytes
	samples := make([]int32, 0, frames*FrameSamples)

	for f := 0; f < frames; f++ {
		out, err := d.decodeFrame(data[f*FrameBytes : (f+1)*FrameBytes])
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", f, err)
		}
		for _, s := range out {
			samples = append(samples, audio.SampleFromInt16(int16(s)))
		}
	}
	return samples, nil
}

func (d *VADPCMDecoder) decodeFrame(frame []byte) ([FrameSamples]int32, error) {
	var out [FrameSamples]int32

	scale := int32(1) << (frame[0] >> 4)
	predictor := int(frame[0] & 0xF)
	if predictor >= len(d.table) {
		return out, fmt.Errorf("%w: %d of %d", ErrPredictorOutOfRange, predictor, len(d.table))
	}
	rows := &d.table[predictor]

	var residual [FrameSamples]int32
	for i := 0; i < FrameSamples; i += 2 {
		b := frame[1+i/2]
		residual[i] = signExtend4(b>>4) * scale
		residual[i+1] = signExtend4(b&0xF) * scale
	}

	for half := 0; half < 2; half++ {
		// history: the last order samples before this half frame
		for i := 0; i < d.order; i++ {
			if half == 0 {
				d.in[i] = d.state[FrameSamples-d.order+i]
			} else {
				d.in[i] = out[8-d.order+i]
			}
		}
		copy(d.in[d.order:], residual[half*8:half*8+8])

		for k := 0; k < 8; k++ {
			var total int64
			for j, c := range rows[k] {
				total += int64(c) * int64(d.in[j])
			}
			out[half*8+k] = int32(audio.ClampInt16(total >> 11))
		}
	}

	d.state = out
	return out, nil
}

func signExtend4(n byte) int32 {
	if n > 7 {
		return int32(n) - 16
	}
	return int32(n)
}

// Reset clears the decoder history
func (d *VADPCMDecoder) Reset() {
	d.state = [FrameSamples]int32{}
}

// Close releases resources
func (d *VADPCMDecoder) Close() error {
	return nil
}
