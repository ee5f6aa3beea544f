// ABOUTME: Loader session: offset registration and fixpoint resolution
// ABOUTME: Owns the bank buffer and the offset-to-record arena
package albank

import (
	"fmt"
)

// Item is one registered record. Size is the number of bytes its decoder
// consumed; it is -1 until the item is decoded.
type Item struct {
	Offset uint32
	Kind   Kind
	Size   int
	Value  Record
}

// Session resolves one bank buffer. It is not safe for concurrent use; the
// Graph returned by Load is read-only and may be shared.
type Session struct {
	buf     []byte
	items   []*Item
	index   map[uint32]int
	changed bool
}

// NewSession creates a session over buf. The buffer is never written.
func NewSession(buf []byte) *Session {
	return &Session{
		buf:   buf,
		index: make(map[uint32]int),
	}
}

// Register records that a kind lives at offset and returns a handle to it.
// Registering the same (offset, kind) again returns the existing handle
// without decoding anything twice.
func (s *Session) Register(offset uint32, kind Kind) (Ref, error) {
	if i, ok := s.index[offset]; ok {
		existing := s.items[i]
		if existing.Kind != kind {
			return Ref{}, &OffsetError{
				Offset: offset,
				Kind:   kind,
				Err:    fmt.Errorf("%w: already registered as %s", ErrConflictingOffsetType, existing.Kind),
			}
		}
		return Ref{Offset: offset, Kind: kind}, nil
	}

	if kind <= KindInvalid || kind > KindLoop {
		return Ref{}, fmt.Errorf("no decoder for %s", kind)
	}

	s.index[offset] = len(s.items)
	s.items = append(s.items, &Item{Offset: offset, Kind: kind, Size: -1})
	s.changed = true
	return Ref{Offset: offset, Kind: kind}, nil
}

// Resolve decodes registered items until a full pass registers nothing new.
func (s *Session) Resolve() error {
	for s.changed {
		s.changed = false
		// items grows while decoding; new entries are picked up in this pass
		for i := 0; i < len(s.items); i++ {
			item := s.items[i]
			if item.Value != nil {
				continue
			}
			if err := s.decode(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) decode(item *Item) error {
	if int64(item.Offset) >= int64(len(s.buf)) {
		return &OffsetError{
			Offset: item.Offset,
			Kind:   item.Kind,
			Err:    fmt.Errorf("%w: offset beyond buffer of 0x%X bytes", ErrTruncatedBuffer, len(s.buf)),
		}
	}

	c := newCursor(s.buf, item.Offset)
	value, err := decoders[item.Kind](c, s)
	if err != nil {
		return &OffsetError{Offset: item.Offset, Kind: item.Kind, Err: err}
	}

	item.Value = value
	item.Size = c.pos - int(item.Offset)
	return nil
}

// Load decodes a whole bank file, rooted at offset 0.
func Load(buf []byte) (*Graph, error) {
	s := NewSession(buf)
	if _, err := s.Register(0, KindBankFile); err != nil {
		return nil, err
	}
	if err := s.Resolve(); err != nil {
		return nil, fmt.Errorf("failed to load bank file: %w", err)
	}
	return &Graph{buf: buf, items: s.items, index: s.index}, nil
}
