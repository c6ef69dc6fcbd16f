// Package wire owns the buffer-level decode primitives shared by every
// metadata query.
//
// Ownership boundary:
// - two-phase size negotiation against a query function
// - fixed-size record array slicing with whole-span bounds checks
// - offset-addressed UTF-16LE string reads
//
// Provider and event semantics live in internal/tdh.
package wire
