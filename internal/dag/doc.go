// Package dag analyses the dependency graph of a plan.
//
// Each resource is a node; every id a resource lists in depends_on is an
// edge from the dependent to its dependency. Ids that name no resource still
// get a node so that dangling references stay visible to traversals.
//
// The package answers four questions about that graph: which cycles exist,
// which references dangle, what the dependency tree under a resource looks
// like, and which root-to-leaf chains end at unfinished work. All traversals
// are bounded by a depth ceiling so adversarial graphs terminate.
package dag
