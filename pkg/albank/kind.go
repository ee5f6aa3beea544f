// ABOUTME: Record kinds and references used by the bank loader
// ABOUTME: A Ref names a record by offset and kind without aliasing it
package albank

import "fmt"

// Kind identifies a bank record type
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBankFile
	KindBank
	KindInstrument
	KindSound
	KindEnvelope
	KindKeyMap
	KindWaveTable
	KindBook
	KindLoop
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBankFile:   "ALBankFile",
	KindBank:       "ALBank",
	KindInstrument: "ALInstrument",
	KindSound:      "ALSound",
	KindEnvelope:   "ALEnvelope",
	KindKeyMap:     "ALKeyMap",
	KindWaveTable:  "ALWaveTable",
	KindBook:       "ALADPCMBook",
	KindLoop:       "ALADPCMLoop",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Ref is a handle to a registered record. The zero Ref means "absent".
type Ref struct {
	Offset uint32
	Kind   Kind
}

// IsNil reports whether the reference is absent
func (r Ref) IsNil() bool {
	return r.Kind == KindInvalid
}

func (r Ref) String() string {
	if r.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%s@0x%X", r.Kind, r.Offset)
}

// MarshalText writes the record kind name, so snapshots and diagnostics
// carry "ALWaveTable" rather than a number.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalText writes the reference in its String form.
func (r Ref) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
