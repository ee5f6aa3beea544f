// ABOUTME: Read-only view over a resolved bank graph
// ABOUTME: Enumerates records by kind and dereferences Refs
package albank

import (
	"sort"
)

// Graph is the result of Load. It never changes after Load returns.
type Graph struct {
	buf   []byte
	items []*Item
	index map[uint32]int
}

// Len returns the number of resolved records
func (g *Graph) Len() int {
	return len(g.items)
}

// Root returns the bank file at offset 0
func (g *Graph) Root() *BankFile {
	return Deref[*BankFile](g, Ref{Offset: 0, Kind: KindBankFile})
}

// Get returns the record decoded at offset.
func (g *Graph) Get(offset uint32) (Record, bool) {
	i, ok := g.index[offset]
	if !ok {
		return nil, false
	}
	return g.items[i].Value, true
}

// AllOf returns every record of kind in registration order.
func (g *Graph) AllOf(kind Kind) []Record {
	var out []Record
	for _, item := range g.items {
		if item.Kind == kind {
			out = append(out, item.Value)
		}
	}
	return out
}

// Count returns how many records of kind were resolved
func (g *Graph) Count(kind Kind) int {
	n := 0
	for _, item := range g.items {
		if item.Kind == kind {
			n++
		}
	}
	return n
}

// Items returns a copy of all items sorted by offset.
func (g *Graph) Items() []Item {
	out := make([]Item, len(g.items))
	for i, item := range g.items {
		out[i] = *item
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// Deref resolves a Ref to its record. It returns the zero T for nil refs
// and for refs of a different kind.
func Deref[T Record](g *Graph, ref Ref) T {
	var zero T
	if ref.IsNil() {
		return zero
	}
	i, ok := g.index[ref.Offset]
	if !ok || g.items[i].Kind != ref.Kind {
		return zero
	}
	v, ok := g.items[i].Value.(T)
	if !ok {
		return zero
	}
	return v
}

// Banks returns the root's banks in bank-array order
func (g *Graph) Banks() []*Bank {
	root := g.Root()
	if root == nil {
		return nil
	}
	out := make([]*Bank, len(root.Banks))
	for i, ref := range root.Banks {
		out[i] = Deref[*Bank](g, ref)
	}
	return out
}

// Instrument dereferences an instrument handle; nil for absent slots.
func (g *Graph) Instrument(ref Ref) *Instrument { return Deref[*Instrument](g, ref) }

// Sound dereferences a sound handle
func (g *Graph) Sound(ref Ref) *Sound { return Deref[*Sound](g, ref) }

// Envelope dereferences an envelope handle
func (g *Graph) Envelope(ref Ref) *Envelope { return Deref[*Envelope](g, ref) }

// KeyMap dereferences a key map handle
func (g *Graph) KeyMap(ref Ref) *KeyMap { return Deref[*KeyMap](g, ref) }

// WaveTable dereferences a wave table handle
func (g *Graph) WaveTable(ref Ref) *WaveTable { return Deref[*WaveTable](g, ref) }

// Book dereferences a codebook handle; nil when the wave has none.
func (g *Graph) Book(ref Ref) *Book { return Deref[*Book](g, ref) }

// Loop dereferences a loop handle; nil when the wave does not loop.
func (g *Graph) Loop(ref Ref) *Loop { return Deref[*Loop](g, ref) }

// WaveTableRefs returns a handle to every distinct wave table sorted by its
// base offset in the sample file. Ties keep registration order.
func (g *Graph) WaveTableRefs() []Ref {
	var refs []Ref
	for _, item := range g.items {
		if item.Kind == KindWaveTable {
			refs = append(refs, Ref{Offset: item.Offset, Kind: KindWaveTable})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return g.WaveTable(refs[i]).Base < g.WaveTable(refs[j]).Base
	})
	return refs
}

// WaveTables returns the records behind WaveTableRefs, in the same order.
func (g *Graph) WaveTables() []*WaveTable {
	refs := g.WaveTableRefs()
	out := make([]*WaveTable, len(refs))
	for i, ref := range refs {
		out[i] = g.WaveTable(ref)
	}
	return out
}

// SnapshotEntry is the serialisable form of one item.
type SnapshotEntry struct {
	Offset uint32 `cbor:"offset" yaml:"offset"`
	Kind   string `cbor:"kind" yaml:"kind"`
	Size   int    `cbor:"size" yaml:"size"`
	Value  Record `cbor:"value" yaml:"value"`
}

// Snapshot lists every item sorted by offset, for dumping or diffing banks
// across game versions.
func (g *Graph) Snapshot() []SnapshotEntry {
	items := g.Items()
	out := make([]SnapshotEntry, len(items))
	for i, item := range items {
		out[i] = SnapshotEntry{
			Offset: item.Offset,
			Kind:   item.Kind.String(),
			Size:   item.Size,
			Value:  item.Value,
		}
	}
	return out
}
