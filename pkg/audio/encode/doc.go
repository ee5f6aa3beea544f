// ABOUTME: Audio encoder package for writing decoded samples
// ABOUTME: Provides the Encoder interface and a 16-bit PCM implementation
// Package encode provides audio encoders.
//
// Supports: PCM (16-bit, little- or big-endian)
//
// All encoders accept int32 samples in 24-bit range. Little-endian output
// feeds the playback device; big-endian output is the AIFF sound data layout.
//
// Example:
//
//	encoder, err := encode.NewPCMBigEndian(format)
//	data, err := encoder.Encode(samples)
package encode
