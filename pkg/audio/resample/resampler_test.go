// ABOUTME: Tests for the linear resampler
// ABOUTME: Covers rate conversion, chunk continuity and multi-channel input
package resample

import (
	"testing"
)

func equalSamples(t *testing.T, got, want []int32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d samples, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    []int32
		inRate   int
		outRate  int
		channels int
		want     []int32
	}{
		{
			name:     "same rate copies",
			input:    []int32{1, 2, 3},
			inRate:   22050,
			outRate:  22050,
			channels: 1,
			want:     []int32{1, 2, 3},
		},
		{
			name:     "upsample by two",
			input:    []int32{0, 100, 200},
			inRate:   22050,
			outRate:  44100,
			channels: 1,
			want:     []int32{0, 50, 100, 150},
		},
		{
			name:     "downsample by two",
			input:    []int32{0, 10, 20, 30, 40},
			inRate:   44100,
			outRate:  22050,
			channels: 1,
			want:     []int32{0, 20},
		},
		{
			name:     "stereo upsample",
			input:    []int32{0, 1000, 100, 2000},
			inRate:   16000,
			outRate:  32000,
			channels: 2,
			want:     []int32{0, 1000, 50, 1500},
		},
		{
			name:     "empty",
			input:    nil,
			inRate:   22050,
			outRate:  44100,
			channels: 1,
			want:     []int32{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equalSamples(t, Convert(tt.input, tt.inRate, tt.outRate, tt.channels), tt.want)
		})
	}
}

func TestResampleAcrossChunks(t *testing.T) {
	r := New(22050, 44100, 1)
	out := make([]int32, 16)

	var got []int32
	n := r.Resample([]int32{0, 100}, out)
	got = append(got, out[:n]...)
	n = r.Resample([]int32{200}, out)
	got = append(got, out[:n]...)

	equalSamples(t, got, Convert([]int32{0, 100, 200}, 22050, 44100, 1))
}

func TestReset(t *testing.T) {
	r := New(22050, 44100, 1)
	out := make([]int32, 8)
	r.Resample([]int32{500, 600}, out)

	r.Reset()
	n := r.Resample([]int32{0, 100}, out)
	equalSamples(t, out[:n], []int32{0, 50})
}

func TestOutputSamplesNeeded(t *testing.T) {
	tests := []struct {
		inRate, outRate, channels, input, want int
	}{
		{22050, 44100, 1, 100, 200},
		{44100, 22050, 1, 100, 50},
		{32000, 32000, 2, 64, 64},
	}
	for _, tt := range tests {
		r := New(tt.inRate, tt.outRate, tt.channels)
		if got := r.OutputSamplesNeeded(tt.input); got != tt.want {
			t.Errorf("OutputSamplesNeeded(%d) %d->%d: expected %d, got %d", tt.input, tt.inRate, tt.outRate, tt.want, got)
		}
	}
}
