// ABOUTME: Audio output package for previewing samples
// ABOUTME: Provides the Output interface and the oto implementation
// Package output provides audio playback interfaces.
//
// The oto backend keeps one device context for the life of the process, so
// callers resample to DeviceSampleRate before writing.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(output.DeviceSampleRate, 1)
//	err = out.Write(samples)
package output
