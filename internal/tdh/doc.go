// Package tdh owns provider and event metadata semantics.
//
// Ownership boundary:
// - native layout constants and their decoders
// - provider enumeration and per-event schema decoding
// - field length/count dependency resolution
// - the Source contract and the memoizing Catalog over it
//
// Buffer primitives live in internal/wire; platform adapters in
// internal/source.
package tdh
