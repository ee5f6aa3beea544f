// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between different sample rates
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation and handles both upsampling and downsampling.
// Banks store samples at their own rate; previews are converted to the
// playback device rate.
//
// Example:
//
//	r := resample.New(22050, 44100, 1)
//	n := r.Resample(inputSamples, outputSamples)
//
//	clip := resample.Convert(samples, 22050, 44100, 1)
package resample
