// ABOUTME: Error kinds reported by the bank loader
// ABOUTME: Sentinel errors plus OffsetError carrying record location
package albank

import (
	"errors"
	"fmt"
)

var (
	// ErrConflictingOffsetType means one offset was claimed by two record kinds.
	ErrConflictingOffsetType = errors.New("offset registered with conflicting record type")

	// ErrUnsupportedWaveType is returned for raw 16-bit wave tables.
	ErrUnsupportedWaveType = errors.New("unsupported wave type")

	// ErrUnknownWaveType is returned for wave type discriminators other than ADPCM and RAW16.
	ErrUnknownWaveType = errors.New("unknown wave type")

	// ErrTruncatedBuffer means a record extends past the end of the buffer.
	ErrTruncatedBuffer = errors.New("truncated buffer")

	// ErrCodebookSizeMismatch means a codebook's coefficient table is not order*npredictors*16 bytes.
	ErrCodebookSizeMismatch = errors.New("codebook size mismatch")

	// ErrInvalidCount is returned for negative array counts.
	ErrInvalidCount = errors.New("invalid array count")

	// ErrNonZeroPadding means padding bytes that must be zero are not.
	ErrNonZeroPadding = errors.New("non-zero padding")
)

// OffsetError records which record failed and where.
type OffsetError struct {
	Offset uint32
	Kind   Kind
	Err    error
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s at 0x%X: %v", e.Kind, e.Offset, e.Err)
}

func (e *OffsetError) Unwrap() error {
	return e.Err
}
