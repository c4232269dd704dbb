// Package graph provides a small generic directed graph used for dependency
// analysis.
//
// # Model
//
// Nodes are kept in insertion order and every query returns them in that
// order, so results are deterministic for a given input. Edges are
// deduplicated; self-loops are allowed and show up as one-node cycles.
//
// # Cycles
//
// Cycles lists every elementary cycle once. For each node s, taken in key
// order, a circuit search over the nodes >= s finds the cycles whose
// smallest node is s; blocked nodes are only revisited after a cycle through
// them was found, so no elementary cycle is skipped and none is repeated.
// Each cycle starts at its smallest node and is closed by repeating it.
//
// The search uses an explicit stack, so arbitrarily deep graphs cannot
// exhaust the goroutine stack.
//
// # Thread-Safety
//
// A Graph is not safe for concurrent mutation. Once built it may be read
// from many goroutines.
package graph
