// Package dom defines the boundary between the reconciler and the real tree.
//
// The reconciler never touches a concrete tree. Everything it does goes
// through Adapter, a small set of primitive operations: create a node,
// insert it, remove it, read its parent or sibling, set its text. Any
// faithful implementation works; vtree ships two of them (memdom, an
// in-memory browser-style document, and htmldom, backed by
// golang.org/x/net/html).
//
// Optional capabilities (events, styles, properties, attribute enumeration)
// are separate interfaces. Modules type-assert the adapter for them and skip
// work the adapter cannot do.
//
// # Recording
//
// Recorder wraps any Adapter and appends every mutation to an op log. The
// live server streams these logs to clients and the tests use them to check
// how many real-tree mutations a patch performed.
package dom
