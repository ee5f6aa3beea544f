// ABOUTME: IEEE 754 double to 80-bit extended precision conversion
// ABOUTME: Used for the COMM chunk sample rate field
package aifc

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	float64Bias  = 1023
	extendedBias = 16383
	mantissaBits = 52
)

// ToExtended80 converts v to the big-endian 80-bit extended format: sign and
// 15-bit exponent, then a 64-bit mantissa with an explicit integer bit.
// Zero keeps its sign. Denormals, infinities and NaN are rejected.
func ToExtended80(v float64) ([10]byte, error) {
	var out [10]byte

	b := math.Float64bits(v)
	sign := uint16(b>>63) << 15

	if v == 0 {
		binary.BigEndian.PutUint16(out[0:], sign)
		return out, nil
	}

	exponent := int((b >> mantissaBits) & 0x7FF)
	switch exponent {
	case 0:
		return out, fmt.Errorf("%w: denormal %g", ErrUnsupportedFloatValue, v)
	case 0x7FF:
		return out, fmt.Errorf("%w: %g", ErrUnsupportedFloatValue, v)
	}

	exponent = exponent - float64Bias + extendedBias
	mantissa := uint64(1)<<63 | (b&(1<<mantissaBits-1))<<(63-mantissaBits)

	binary.BigEndian.PutUint16(out[0:], sign|uint16(exponent))
	binary.BigEndian.PutUint64(out[2:], mantissa)
	return out, nil
}
