// Package sourceindex classifies comments relative to source nodes.
//
// An Index is built once from the raw source text and the parser's comment
// tokens and is read-only afterwards. It answers row and blank-line queries
// in constant or logarithmic time and classifies comments as leading,
// trailing, detached or end-of-file.
//
// Leading does not exclude comments separated from the node by a blank
// line. Callers that need that distinction subtract the detached blocks
// with WithoutDetached, keeping the two classifications independent.
package sourceindex
