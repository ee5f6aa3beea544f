// ABOUTME: Chunk interface and shared serialisation helpers
// ABOUTME: Handles chunk headers, even padding and Pascal strings
package aifc

import (
	"encoding/binary"
	"fmt"
)

// Chunk is one typed block inside a FORM container.
type Chunk interface {
	// ID returns the four character chunk id
	ID() string

	// Body returns the chunk data without header or pad byte
	Body() ([]byte, error)
}

// appendChunk writes id, length and body, padding odd bodies with a zero
// byte that is not counted in the length.
func appendChunk(dst []byte, c Chunk) ([]byte, error) {
	id := c.ID()
	if len(id) != 4 {
		return nil, fmt.Errorf("%w: chunk id %q", ErrInvalidChunk, id)
	}

	body, err := c.Body()
	if err != nil {
		return nil, fmt.Errorf("%s chunk: %w", id, err)
	}

	dst = append(dst, id...)
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(body)))
	dst = append(dst, body...)
	if len(body)%2 != 0 {
		dst = append(dst, 0)
	}
	return dst, nil
}

// appendPString writes a length byte and s, plus a zero byte when the total
// is odd.
func appendPString(dst []byte, s string) ([]byte, error) {
	if len(s) > 255 {
		return nil, fmt.Errorf("%w: string of %d bytes does not fit a pstring", ErrInvalidChunk, len(s))
	}
	dst = append(dst, byte(len(s)))
	dst = append(dst, s...)
	if (1+len(s))%2 != 0 {
		dst = append(dst, 0)
	}
	return dst, nil
}
