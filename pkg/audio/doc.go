// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer types and sample conversion functions
// Package audio provides the sample types shared by the decode, encode,
// resample and output packages.
//
// Samples are int32 values left-justified in the 24-bit range, so a 16-bit
// sample s is stored as s<<8. N64 samples are always 16-bit mono.
//
// A VADPCM Format carries its predictor codebook in CodecHeader:
//
//	format := audio.Format{
//	    Codec:       audio.CodecVADPCM,
//	    SampleRate:  22050,
//	    Channels:    1,
//	    BitDepth:    16,
//	    CodecHeader: audio.CodebookHeader(2, 4, book.Packed()),
//	}
package audio
