// ABOUTME: Tests for audio types
// ABOUTME: Tests sample conversion functions and codebook headers
package audio

import (
	"bytes"
	"testing"
)

func TestSampleFromInt16(t *testing.T) {
	tests := []struct {
		name     string
		input    int16
		expected int32
	}{
		{"zero", 0, 0},
		{"positive", 100, 100 << 8},
		{"negative", -100, -100 << 8},
		{"max", 32767, 32767 << 8},
		{"min", -32768, -32768 << 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SampleFromInt16(tt.input)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestRoundTrip16Bit(t *testing.T) {
	samples := []int16{0, 100, -100, 1000, -1000, 32767, -32768}

	for _, original := range samples {
		result := SampleToInt16(SampleFromInt16(original))
		if result != original {
			t.Errorf("round-trip failed: %d -> %d", original, result)
		}
	}
}

func TestClampInt16(t *testing.T) {
	tests := []struct {
		input    int64
		expected int16
	}{
		{0, 0},
		{-5, -5},
		{32767, 32767},
		{32768, 32767},
		{-32768, -32768},
		{-40000, -32768},
		{1 << 40, 32767},
	}

	for _, tt := range tests {
		if got := ClampInt16(tt.input); got != tt.expected {
			t.Errorf("ClampInt16(%d): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}

func TestCodebookHeaderRoundTrip(t *testing.T) {
	table := make([]byte, 2*1*16)
	for i := range table {
		table[i] = byte(i)
	}
	table[0] = 0xFF // first coefficient negative

	header := CodebookHeader(2, 1, table)
	if !bytes.Equal(header[:4], []byte{0, 2, 0, 1}) {
		t.Errorf("unexpected header prefix % X", header[:4])
	}

	order, npred, coefs, err := ParseCodebookHeader(header)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if order != 2 || npred != 1 {
		t.Errorf("expected order 2 npredictors 1, got %d %d", order, npred)
	}
	if len(coefs) != 16 {
		t.Fatalf("expected 16 coefficients, got %d", len(coefs))
	}
	if coefs[0] != -255 || coefs[1] != 0x0203 {
		t.Errorf("unexpected coefficients %v", coefs[:2])
	}
}

func TestParseCodebookHeaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
	}{
		{"empty", nil},
		{"short table", CodebookHeader(2, 1, make([]byte, 31))},
		{"negative order", CodebookHeader(-1, 1, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := ParseCodebookHeader(tt.header); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBufferFrames(t *testing.T) {
	b := Buffer{Samples: make([]int32, 10), Format: Format{Channels: 2}}
	if b.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", b.Frames())
	}
	if (Buffer{}).Frames() != 0 {
		t.Error("expected 0 frames without channels")
	}
}
