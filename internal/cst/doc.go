// Package cst defines the immutable concrete syntax tree consumed by the
// decoder and the comment index.
//
// A Parser produces one ParseResult per named document. Everything in the
// result is plain data: nodes are converted eagerly from whatever structure
// the underlying parser uses, so nothing here holds a reference into a
// mutable parse tree. Origins are 0-based in both bytes and rows; byte
// ranges are end-exclusive.
package cst
