// Package rebuild reconstructs a live, editable node tree inside a design
// document from a serialized snapshot.
//
// # Overview
//
// The entry point is Rebuild, which walks the snapshot's document tree
// top-down, creates the matching host node for each snapshot node, and
// applies visual, layout, and text properties tolerantly: an attribute that
// is missing or out of range is skipped, never fatal. Recoverable problems
// (unknown node kinds, unavailable fonts, image fills without pixel data,
// degenerate groups and component sets) are collected as warnings on the
// Result.
//
// # Host Abstraction
//
// The engine never talks to a concrete editor. It drives the interfaces in
// package host (Document, FontLoader, Viewport), so the same walk works
// against a real plugin bridge or the in-memory host used by the CLI and
// the test suite.
//
// # Scheduling
//
// Reconstruction is synchronous but cooperative: after every Options.YieldEvery
// processed nodes the walker yields the processor, keeping the host
// responsive on large trees. All per-call state (the yield counter, the
// font cache, the warnings list) lives on a builder created per invocation,
// so concurrent rebuilds against separate documents do not interfere.
package rebuild
