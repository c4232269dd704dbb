package graph

import (
	"cmp"
	"slices"
)

type edge[K cmp.Ordered] struct {
	from, to K
}

// Graph is a directed graph keyed by K.
type Graph[K cmp.Ordered] struct {
	nodes []K
	index map[K]int
	succ  map[K][]K
	pred  map[K][]K
	edges map[edge[K]]struct{}
}

// New creates an empty graph.
func New[K cmp.Ordered]() *Graph[K] {
	return &Graph[K]{
		index: make(map[K]int),
		succ:  make(map[K][]K),
		pred:  make(map[K][]K),
		edges: make(map[edge[K]]struct{}),
	}
}

// AddNode adds a node. It is a no-op if the node already exists and reports
// whether the node was new.
func (g *Graph[K]) AddNode(k K) bool {
	if _, ok := g.index[k]; ok {
		return false
	}
	g.index[k] = len(g.nodes)
	g.nodes = append(g.nodes, k)
	return true
}

// AddEdge adds an edge from -> to, creating either node if needed. Duplicate
// edges are ignored.
func (g *Graph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	e := edge[K]{from: from, to: to}
	if _, ok := g.edges[e]; ok {
		return
	}
	g.edges[e] = struct{}{}
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
}

// HasNode reports whether k is in the graph.
func (g *Graph[K]) HasNode(k K) bool {
	_, ok := g.index[k]
	return ok
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph[K]) HasEdge(from, to K) bool {
	_, ok := g.edges[edge[K]{from: from, to: to}]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes in insertion order.
func (g *Graph[K]) Nodes() []K {
	return slices.Clone(g.nodes)
}

// Successors returns the targets of k's outgoing edges in insertion order.
func (g *Graph[K]) Successors(k K) []K {
	return slices.Clone(g.succ[k])
}

// Predecessors returns the sources of k's incoming edges in insertion order.
func (g *Graph[K]) Predecessors(k K) []K {
	return slices.Clone(g.pred[k])
}

type frame[K cmp.Ordered] struct {
	node  K
	next  int
	found bool
}

// Cycles returns every elementary cycle exactly once, in canonical form:
// starting at its smallest node and closed, so c[0] == c[len(c)-1]. Cycles
// are ordered by their smallest node, then by search order.
func (g *Graph[K]) Cycles() [][]K {
	starts := slices.Clone(g.nodes)
	slices.Sort(starts)

	var out [][]K
	for _, s := range starts {
		out = append(out, g.circuits(s)...)
	}
	return out
}

// circuits enumerates the cycles whose smallest node is s (Johnson's
// circuit search restricted to nodes >= s). The search keeps an explicit
// stack so path length is bounded by the node count, not the goroutine
// stack.
func (g *Graph[K]) circuits(s K) [][]K {
	var out [][]K
	blocked := map[K]bool{s: true}
	blockedBy := make(map[K]map[K]struct{})

	unblock := func(u K) {
		work := []K{u}
		for len(work) > 0 {
			n := work[len(work)-1]
			work = work[:len(work)-1]
			if !blocked[n] {
				continue
			}
			blocked[n] = false
			for w := range blockedBy[n] {
				work = append(work, w)
			}
			delete(blockedBy, n)
		}
	}

	path := []K{s}
	stack := []frame[K]{{node: s}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := g.succ[top.node]

		if top.next < len(succ) {
			w := succ[top.next]
			top.next++
			switch {
			case w == s:
				out = append(out, append(slices.Clone(path), s))
				top.found = true
			case w < s || blocked[w]:
			default:
				blocked[w] = true
				path = append(path, w)
				stack = append(stack, frame[K]{node: w})
			}
			continue
		}

		v, found := top.node, top.found
		if found {
			unblock(v)
		} else {
			for _, w := range succ {
				if w < s {
					continue
				}
				if blockedBy[w] == nil {
					blockedBy[w] = make(map[K]struct{})
				}
				blockedBy[w][v] = struct{}{}
			}
		}
		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
		if found && len(stack) > 0 {
			stack[len(stack)-1].found = true
		}
	}
	return out
}
