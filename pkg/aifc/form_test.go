// ABOUTME: Tests for FORM assembly and the VADPCM/PCM encoders
// ABOUTME: Re-reads chunk boundaries to check fields survive unchanged
package aifc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

type parsedChunk struct {
	id   string
	body []byte
}

// readChunks walks a FORM container, returning its type and chunks.
func readChunks(t *testing.T, data []byte) (string, []parsedChunk) {
	t.Helper()

	if len(data) < 12 || string(data[:4]) != "FORM" {
		t.Fatalf("not a FORM container: % X", data[:min(len(data), 12)])
	}
	if n := binary.BigEndian.Uint32(data[4:]); int(n) != len(data)-8 {
		t.Fatalf("FORM length %d, expected %d", n, len(data)-8)
	}

	var chunks []parsedChunk
	pos := 12
	for pos < len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.BigEndian.Uint32(data[pos+4:]))
		body := data[pos+8 : pos+8+size]
		chunks = append(chunks, parsedChunk{id: id, body: body})
		pos += 8 + size
		if size%2 != 0 {
			if data[pos] != 0 {
				t.Errorf("%s: expected zero pad byte, got %02X", id, data[pos])
			}
			pos++
		}
	}
	if pos != len(data) {
		t.Fatalf("chunks overrun container: %d > %d", pos, len(data))
	}
	return string(data[8:12]), chunks
}

func testBook(order int16, npredictors uint16) Codebook {
	table := make([]byte, int(order)*int(npredictors)*16)
	for i := range table {
		table[i] = byte(i * 7)
	}
	return Codebook{Order: order, NPredictors: npredictors, Table: table}
}

func TestEncodeRoundTrip(t *testing.T) {
	payload := make([]byte, 0x20)
	for i := range payload {
		payload[i] = byte(0xA0 + i)
	}
	book := testBook(2, 2)

	data, err := Encode(22050, payload, book)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	formType, chunks := readChunks(t, data)
	if formType != "AIFC" {
		t.Errorf("expected AIFC, got %s", formType)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, id := range []string{"COMM", "APPL", "SSND"} {
		if chunks[i].id != id {
			t.Errorf("chunk %d: expected %s, got %s", i, id, chunks[i].id)
		}
	}

	comm := chunks[0].body
	if ch := binary.BigEndian.Uint16(comm[0:]); ch != 1 {
		t.Errorf("expected 1 channel, got %d", ch)
	}
	if frames := binary.BigEndian.Uint32(comm[2:]); frames != 0x20*16/9 {
		t.Errorf("expected %d frames, got %d", 0x20*16/9, frames)
	}
	if bits := binary.BigEndian.Uint16(comm[6:]); bits != 16 {
		t.Errorf("expected 16-bit samples, got %d", bits)
	}
	rate, _ := ToExtended80(22050)
	if !bytes.Equal(comm[8:18], rate[:]) {
		t.Errorf("expected rate % X, got % X", rate[:], comm[8:18])
	}
	if string(comm[18:22]) != "VAPC" {
		t.Errorf("expected VAPC, got %q", comm[18:22])
	}
	if comm[22] != 11 || string(comm[23:34]) != "VADPCM ~4-1" {
		t.Errorf("unexpected compression name % X", comm[22:])
	}

	appl := chunks[1].body
	if string(appl[:4]) != "stoc" {
		t.Errorf("expected stoc, got %q", appl[:4])
	}
	if appl[4] != 11 || string(appl[5:16]) != "VADPCMCODES" {
		t.Errorf("unexpected codes tag % X", appl[4:16])
	}
	if v := binary.BigEndian.Uint16(appl[16:]); v != 1 {
		t.Errorf("expected version 1, got %d", v)
	}
	if order := int16(binary.BigEndian.Uint16(appl[18:])); order != 2 {
		t.Errorf("expected order 2, got %d", order)
	}
	if n := binary.BigEndian.Uint16(appl[20:]); n != 2 {
		t.Errorf("expected 2 predictors, got %d", n)
	}
	if !bytes.Equal(appl[22:], book.Table) {
		t.Error("codebook table changed")
	}

	ssnd := chunks[2].body
	if binary.BigEndian.Uint32(ssnd[0:]) != 0 || binary.BigEndian.Uint32(ssnd[4:]) != 0 {
		t.Errorf("expected zero offset and block size, got % X", ssnd[:8])
	}
	if !bytes.Equal(ssnd[8:], payload) {
		t.Error("payload changed")
	}
}

func TestEncodeExactBytes(t *testing.T) {
	payload := []byte{0x10, 1, 2, 3, 4, 5, 6, 7, 8}
	book := Codebook{Order: 1, NPredictors: 1, Table: bytes.Repeat([]byte{0xAB}, 16)}

	var expected []byte
	expected = append(expected, "FORM"...)
	expected = append(expected, 0, 0, 0, 118)
	expected = append(expected, "AIFC"...)

	expected = append(expected, "COMM"...)
	expected = append(expected, 0, 0, 0, 34)
	expected = append(expected, 0, 1, 0, 0, 0, 16, 0, 16)
	expected = append(expected, 0x40, 0x0D, 0xAC, 0x44, 0, 0, 0, 0, 0, 0)
	expected = append(expected, "VAPC"...)
	expected = append(expected, 11)
	expected = append(expected, "VADPCM ~4-1"...)

	expected = append(expected, "APPL"...)
	expected = append(expected, 0, 0, 0, 38)
	expected = append(expected, "stoc"...)
	expected = append(expected, 11)
	expected = append(expected, "VADPCMCODES"...)
	expected = append(expected, 0, 1, 0, 1, 0, 1)
	expected = append(expected, book.Table...)

	expected = append(expected, "SSND"...)
	expected = append(expected, 0, 0, 0, 17)
	expected = append(expected, 0, 0, 0, 0, 0, 0, 0, 0)
	expected = append(expected, payload...)
	expected = append(expected, 0)

	data, err := Encode(22050, payload, book)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.Equal(data, expected) {
		t.Errorf("expected\n% X\ngot\n% X", expected, data)
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		book Codebook
		want error
	}{
		{"short table", 22050, Codebook{Order: 2, NPredictors: 4, Table: make([]byte, 127)}, ErrCodebookSizeMismatch},
		{"long table", 22050, Codebook{Order: 2, NPredictors: 4, Table: make([]byte, 129)}, ErrCodebookSizeMismatch},
		{"infinite rate", math.Inf(1), testBook(2, 4), ErrUnsupportedFloatValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.rate, make([]byte, 9), tt.book)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEncodePCM(t *testing.T) {
	pcm := []byte{0x00, 0x01, 0x7F, 0xFF, 0x80, 0x00, 0xFF, 0xFF}

	data, err := EncodePCM(32000, 1, 16, pcm)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	formType, chunks := readChunks(t, data)
	if formType != "AIFF" {
		t.Errorf("expected AIFF, got %s", formType)
	}
	if len(chunks) != 2 || chunks[0].id != "COMM" || chunks[1].id != "SSND" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
	if len(chunks[0].body) != 18 {
		t.Errorf("expected 18-byte COMM, got %d", len(chunks[0].body))
	}
	if frames := binary.BigEndian.Uint32(chunks[0].body[2:]); frames != 4 {
		t.Errorf("expected 4 frames, got %d", frames)
	}
	if !bytes.Equal(chunks[1].body[8:], pcm) {
		t.Error("PCM data changed")
	}
}

func TestEncodePCMRejectsLayout(t *testing.T) {
	if _, err := EncodePCM(32000, 0, 16, nil); err == nil {
		t.Error("expected error for zero channels")
	}
	if _, err := EncodePCM(32000, 1, 12, nil); err == nil {
		t.Error("expected error for 12-bit samples")
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		input    int
		expected uint32
	}{
		{0, 0},
		{9, 16},
		{0x20, 56},
		{90, 160},
	}
	for _, tt := range tests {
		if got := FrameCount(tt.input); got != tt.expected {
			t.Errorf("FrameCount(%d): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}
