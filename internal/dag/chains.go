package dag

import (
	"slices"
	"sort"

	"github.com/specialistvlad/plangridgo/internal/model"
)

// LoopSentinel terminates a chain that ran into a dependency loop under a
// milestone root.
const LoopSentinel = "…(dependency loop)"

// PruneWarning reports that chain search under RootID stopped at MaxDepth
// with dependencies left unexplored.
type PruneWarning struct {
	RootID   string
	MaxDepth int
}

// ChainOptions configures IncompleteLeafDependencyChains.
type ChainOptions struct {
	// MaxDepth bounds the number of edges followed from the root. Zero or
	// less means DefaultMaxDepth.
	MaxDepth int
	// OnPrune is called at most once per call when the ceiling cut the
	// search short.
	OnPrune func(PruneWarning)
	// Less sorts the returned chains. Nil keeps traversal order.
	Less func(a, b []string) bool
}

// IncompleteLeafDependencyChains returns every path from rootID to a leaf of
// interest: a milestone other than the root, a task without dependencies or
// a missing id. Only chains ending at unfinished work are kept. If that
// leaves nothing, the search is repeated accepting completed tasks as
// leaves. Unknown roots yield nil.
func (a *Analyzer) IncompleteLeafDependencyChains(rootID string, opts ChainOptions) [][]string {
	root, ok := a.Resource(rootID)
	if !ok {
		return nil
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	s := &chainSearch{
		a:             a,
		maxDepth:      maxDepth,
		milestoneRoot: root.Type == model.TypeMilestone,
	}
	chains := s.run(rootID, false)
	if len(chains) == 0 {
		chains = s.run(rootID, true)
	}

	if s.pruned && opts.OnPrune != nil {
		opts.OnPrune(PruneWarning{RootID: rootID, MaxDepth: maxDepth})
	}
	if opts.Less != nil {
		sort.SliceStable(chains, func(i, j int) bool { return opts.Less(chains[i], chains[j]) })
	}
	return chains
}

type chainSearch struct {
	a             *Analyzer
	maxDepth      int
	milestoneRoot bool
	pruned        bool

	acceptCompleted bool
	path            []string
	onPath          map[string]bool
	chains          [][]string
}

func (s *chainSearch) run(rootID string, acceptCompleted bool) [][]string {
	s.acceptCompleted = acceptCompleted
	s.path = nil
	s.onPath = make(map[string]bool)
	s.chains = nil
	s.walk(rootID)
	return s.chains
}

func (s *chainSearch) emit(extra ...string) {
	chain := slices.Clone(s.path)
	s.chains = append(s.chains, append(chain, extra...))
}

func (s *chainSearch) walk(id string) {
	s.path = append(s.path, id)
	s.onPath[id] = true
	defer func() {
		s.path = s.path[:len(s.path)-1]
		delete(s.onPath, id)
	}()

	isRoot := len(s.path) == 1
	res, ok := s.a.Resource(id)
	if !ok {
		s.emit()
		return
	}
	if !isRoot && res.Type == model.TypeMilestone {
		s.emit()
		return
	}

	deps := res.Dependencies()
	if len(deps) == 0 {
		if res.Type == model.TypeTask && (!res.Complete || s.acceptCompleted) {
			s.emit()
		}
		return
	}

	if len(s.path)-1 >= s.maxDepth {
		s.pruned = true
		return
	}

	for _, dep := range deps {
		if s.onPath[dep] {
			if s.milestoneRoot {
				s.emit(LoopSentinel)
			}
			continue
		}
		s.walk(dep)
	}
}
