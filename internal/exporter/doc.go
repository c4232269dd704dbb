// Package exporter renders resources back into source text.
//
// Export interleaves resources with the comments recorded in a
// sourceindex.Index: comments above a resource stay above it, comments at
// the end of a header, attribute or closing brace stay on that line, and
// anything else inside a body becomes an indented line in byte order.
// Comments after the last resource are appended at the end. Every comment
// is emitted exactly once.
//
// Attribute values reuse their original text when it is a single line
// without comments and still describes the current value; otherwise the
// value is printed canonically.
package exporter
