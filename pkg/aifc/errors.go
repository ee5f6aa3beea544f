// ABOUTME: Error kinds reported by the container writer
// ABOUTME: Matched with errors.Is by callers
package aifc

import "errors"

var (
	// ErrUnsupportedFloatValue is returned for denormal, infinite and NaN sample rates.
	ErrUnsupportedFloatValue = errors.New("unsupported float value")

	// ErrCodebookSizeMismatch means the codebook table is not order*npredictors*16 bytes.
	ErrCodebookSizeMismatch = errors.New("codebook size mismatch")

	// ErrInvalidChunk covers malformed chunk ids and over-long strings.
	ErrInvalidChunk = errors.New("invalid chunk")
)
