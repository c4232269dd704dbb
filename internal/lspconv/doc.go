// Package lspconv converts diagnostics into Language Server Protocol
// messages. Positions are 0-based lines and UTF-16 code unit columns.
package lspconv
