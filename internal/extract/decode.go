// ABOUTME: In-process VADPCM to AIFF conversion
// ABOUTME: Decodes a sample payload and wraps it as 16-bit big-endian AIFF
package extract

import (
	"fmt"
	"math"

	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/aifc"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/albank"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio/decode"
	"github.com/marijnvdwerf/pokemonsnap-splat/pkg/audio/encode"
)

// codebookOf narrows a bank book to the s16 order and u16 npredictors
// fields of the VADPCMCODES chunk.
func codebookOf(book *albank.Book) (aifc.Codebook, error) {
	if book.Order < 0 || book.Order > math.MaxInt16 || book.NPredictors < 0 || book.NPredictors > math.MaxUint16 {
		return aifc.Codebook{}, fmt.Errorf("%w: order %d, npredictors %d out of range", aifc.ErrCodebookSizeMismatch, book.Order, book.NPredictors)
	}
	return aifc.Codebook{
		Order:       int16(book.Order),
		NPredictors: uint16(book.NPredictors),
		Table:       book.Packed(),
	}, nil
}

// DecodeSamples decodes a VADPCM payload with book into a mono buffer.
func DecodeSamples(sampleRate int, payload []byte, book *albank.Book) (audio.Buffer, error) {
	codebook, err := codebookOf(book)
	if err != nil {
		return audio.Buffer{}, err
	}
	format := audio.Format{
		Codec:       audio.CodecVADPCM,
		SampleRate:  sampleRate,
		Channels:    1,
		BitDepth:    16,
		CodecHeader: audio.CodebookHeader(codebook.Order, codebook.NPredictors, codebook.Table),
	}

	decoder, err := decode.NewVADPCM(format)
	if err != nil {
		return audio.Buffer{}, err
	}
	defer decoder.Close()

	samples, err := decoder.Decode(payload)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("decoding: %w", err)
	}

	format.Codec = audio.CodecPCM
	format.CodecHeader = nil
	return audio.Buffer{Samples: samples, Format: format}, nil
}

// DecodeAIFF decodes a VADPCM payload and returns an uncompressed AIFF file.
func DecodeAIFF(sampleRate float64, payload []byte, book *albank.Book) ([]byte, error) {
	buf, err := DecodeSamples(int(sampleRate), payload, book)
	if err != nil {
		return nil, err
	}

	encoder, err := encode.NewPCMBigEndian(buf.Format)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	pcm, err := encoder.Encode(buf.Samples)
	if err != nil {
		return nil, err
	}
	return aifc.EncodePCM(sampleRate, buf.Format.Channels, buf.Format.BitDepth, pcm)
}
