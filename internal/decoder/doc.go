// Package decoder turns a concrete syntax tree into the IR.
//
// Decoding never fails outright. Unknown or malformed shapes are omitted
// with a diagnostic so callers always get partial structure back; only an
// error-severity diagnostic withholds the validated Document.
package decoder
