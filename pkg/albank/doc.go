// ABOUTME: N64 audio bank (.ctl) loader package
// ABOUTME: Resolves pointer-addressed bank records into a deduplicated graph
// Package albank decodes libultra audio bank files.
//
// A bank file is a flat big-endian buffer whose records point at each other
// through absolute 32-bit offsets. Load registers the root BankFile at offset
// 0 and keeps decoding newly discovered offsets until a pass finds nothing
// new. Every offset is decoded exactly once, no matter how many records
// reference it.
//
// Records hold Refs (offset + kind) rather than pointers; resolve them
// through the Graph.
//
// Example:
//
//	graph, err := albank.Load(ctl)
//	for _, wt := range graph.WaveTables() {
//	    book := graph.Book(wt.Book)
//	    payload := tbl[wt.Base : wt.Base+uint32(wt.Len)]
//	}
package albank
