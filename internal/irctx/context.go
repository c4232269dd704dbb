// Package irctx provides Context, the query façade over one decoded resource
// set.
//
// A Context owns an immutable resource list. Everything derived from it
// (the dependency graph, cycles, dangling references, trees and chains) is
// computed on first use and cached for the lifetime of the Context. The
// caches are guarded, so a Context may be shared between goroutines.
package irctx

import (
	"slices"
	"sync"

	"github.com/specialistvlad/plangridgo/internal/dag"
	"github.com/specialistvlad/plangridgo/internal/decoder"
	"github.com/specialistvlad/plangridgo/internal/model"
)

// Options configures a Context.
type Options struct {
	// MaxDepth is the traversal ceiling for trees and chains. Zero means
	// dag.DefaultMaxDepth.
	MaxDepth int
}

// Context aggregates a decode result and memoizes dependency analysis.
type Context struct {
	result   decoder.Result
	maxDepth int

	analyzer    func() *dag.Analyzer
	cycles      func() [][]string
	cycleDiags  func() []model.Diagnostic
	danglingDgs func() []model.Diagnostic
	diagnostics func() []model.Diagnostic

	mu     sync.Mutex
	trees  map[string]*dag.TreeNode
	chains map[chainKey]chainEntry
}

type chainKey struct {
	root     string
	maxDepth int
}

type chainEntry struct {
	chains [][]string
	prune  *dag.PruneWarning
}

// New creates a Context over a decode result.
func New(result decoder.Result, opts Options) *Context {
	c := &Context{
		result:   result,
		maxDepth: opts.MaxDepth,
		trees:    make(map[string]*dag.TreeNode),
		chains:   make(map[chainKey]chainEntry),
	}
	if c.maxDepth <= 0 {
		c.maxDepth = dag.DefaultMaxDepth
	}

	c.analyzer = sync.OnceValue(func() *dag.Analyzer {
		return dag.Build(c.result.Resources)
	})
	c.cycles = sync.OnceValue(func() [][]string {
		return c.analyzer().Cycles()
	})
	c.cycleDiags = sync.OnceValue(func() []model.Diagnostic {
		return c.analyzer().CycleDiagnostics()
	})
	c.danglingDgs = sync.OnceValue(func() []model.Diagnostic {
		return c.analyzer().DanglingDiagnostics()
	})
	c.diagnostics = sync.OnceValue(func() []model.Diagnostic {
		out := slices.Clone(c.result.Diagnostics)
		out = append(out, c.cycleDiags()...)
		return append(out, c.danglingDgs()...)
	})
	return c
}

// Resources returns the decoded resources in source order.
func (c *Context) Resources() []model.Resource {
	return slices.Clone(c.result.Resources)
}

// Resource returns the resource with the given id.
func (c *Context) Resource(id string) (model.Resource, bool) {
	return c.analyzer().Resource(id)
}

// Document returns the validated IR, or nil when decoding produced errors.
func (c *Context) Document() *model.Document {
	return c.result.Document
}

// Success reports whether decoding produced no errors.
func (c *Context) Success() bool {
	return c.result.Success
}

// DecodeDiagnostics returns the diagnostics produced by the decoder only.
func (c *Context) DecodeDiagnostics() []model.Diagnostic {
	return slices.Clone(c.result.Diagnostics)
}

// Diagnostics returns decode, cycle and dangling-reference diagnostics.
func (c *Context) Diagnostics() []model.Diagnostic {
	return slices.Clone(c.diagnostics())
}

// Cycles returns the canonical dependency cycles.
func (c *Context) Cycles() [][]string {
	return cloneAll(c.cycles())
}

// CycleDiagnostics returns one diagnostic per cycle.
func (c *Context) CycleDiagnostics() []model.Diagnostic {
	return slices.Clone(c.cycleDiags())
}

// DanglingDiagnostics returns one diagnostic per unresolved reference.
func (c *Context) DanglingDiagnostics() []model.Diagnostic {
	return slices.Clone(c.danglingDgs())
}

// Dependencies returns the ids id depends on.
func (c *Context) Dependencies(id string) []string {
	return c.analyzer().Dependencies(id)
}

// Dependents returns the ids of resources depending on id.
func (c *Context) Dependents(id string) []string {
	return c.analyzer().Dependents(id)
}

// DependencyTree returns the tree under rootID built with dag.DefaultPolicy.
// The result is cached per root and must not be modified.
func (c *Context) DependencyTree(rootID string) *dag.TreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.trees[rootID]; ok {
		return t
	}
	t := c.analyzer().DependencyTree(rootID, dag.DefaultPolicy, c.maxDepth)
	c.trees[rootID] = t
	return t
}

// DependencyTreeWith builds an uncached tree with a custom policy.
func (c *Context) DependencyTreeWith(rootID string, policy dag.Policy) *dag.TreeNode {
	return c.analyzer().DependencyTree(rootID, policy, c.maxDepth)
}

// IncompleteLeafDependencyChains returns the chains under rootID. Results
// are cached per root and depth; a pruning warning recorded on first
// computation is reported to opts.OnPrune on every call.
func (c *Context) IncompleteLeafDependencyChains(rootID string, opts dag.ChainOptions) [][]string {
	depth := opts.MaxDepth
	if depth <= 0 {
		depth = c.maxDepth
	}
	key := chainKey{root: rootID, maxDepth: depth}

	c.mu.Lock()
	entry, ok := c.chains[key]
	if !ok {
		entry.chains = c.analyzer().IncompleteLeafDependencyChains(rootID, dag.ChainOptions{
			MaxDepth: depth,
			OnPrune: func(w dag.PruneWarning) {
				entry.prune = &w
			},
		})
		c.chains[key] = entry
	}
	c.mu.Unlock()

	if entry.prune != nil && opts.OnPrune != nil {
		opts.OnPrune(*entry.prune)
	}

	out := cloneAll(entry.chains)
	if opts.Less != nil {
		slices.SortStableFunc(out, func(a, b []string) int {
			switch {
			case opts.Less(a, b):
				return -1
			case opts.Less(b, a):
				return 1
			}
			return 0
		})
	}
	return out
}

func cloneAll(in [][]string) [][]string {
	if in == nil {
		return nil
	}
	out := make([][]string, len(in))
	for i, s := range in {
		out[i] = slices.Clone(s)
	}
	return out
}
