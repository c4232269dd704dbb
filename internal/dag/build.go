package dag

import (
	"sync"

	"github.com/specialistvlad/plangridgo/internal/graph"
	"github.com/specialistvlad/plangridgo/internal/model"
)

// DefaultMaxDepth is the traversal ceiling used when none is configured.
const DefaultMaxDepth = 1000

// Analyzer holds the dependency graph of one resource set. It is read-only
// after Build.
type Analyzer struct {
	resources []model.Resource
	byID      map[string]int
	graph     *graph.Graph[string]
	cycles    func() [][]string
}

// Build constructs the dependency graph. Resources are expected to have
// unique ids; for repeated ids the first one wins.
func Build(resources []model.Resource) *Analyzer {
	a := &Analyzer{
		resources: resources,
		byID:      make(map[string]int, len(resources)),
		graph:     graph.New[string](),
	}
	for i, r := range resources {
		if _, ok := a.byID[r.ID]; ok {
			continue
		}
		a.byID[r.ID] = i
		a.graph.AddNode(r.ID)
	}
	for _, r := range resources {
		for _, dep := range r.Dependencies() {
			a.graph.AddEdge(r.ID, dep)
		}
	}
	a.cycles = sync.OnceValue(a.graph.Cycles)
	return a
}

// Resource returns the resource with the given id.
func (a *Analyzer) Resource(id string) (model.Resource, bool) {
	i, ok := a.byID[id]
	if !ok {
		return model.Resource{}, false
	}
	return a.resources[i], true
}

// Dependencies returns the ids id depends on, including missing ones.
func (a *Analyzer) Dependencies(id string) []string {
	return a.graph.Successors(id)
}

// Dependents returns the ids of resources that depend on id.
func (a *Analyzer) Dependents(id string) []string {
	return a.graph.Predecessors(id)
}
