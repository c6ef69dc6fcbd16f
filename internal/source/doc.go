// Package source provides platform adapters implementing tdh.Source.
//
// On Windows, System is backed by the native metadata procedures in
// tdh.dll. Elsewhere System reports ErrUnsupported; tests use
// internal/tdh/tdhtest instead.
package source
