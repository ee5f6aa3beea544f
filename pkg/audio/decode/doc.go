// ABOUTME: Audio decoder package for N64 sample codecs
// ABOUTME: Provides the Decoder interface and the VADPCM implementation
// Package decode provides audio decoders.
//
// Supports: VADPCM (N64 ADPCM, 9-byte frames of 16 samples)
//
// All decoders implement the Decoder interface and output int32 samples
// in 24-bit range, matching the rest of the audio packages.
//
// Example:
//
//	decoder, err := decode.NewVADPCM(format)
//	samples, err := decoder.Decode(payload)
package decode
