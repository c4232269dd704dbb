// Package report renders diagnostics, dependency trees and chains for
// people and for tools. Text output is line oriented; JSON and YAML share
// one set of view structs.
package report
