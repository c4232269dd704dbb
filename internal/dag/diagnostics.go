package dag

import (
	"slices"

	"github.com/specialistvlad/plangridgo/internal/model"
)

// Cycles returns every dependency cycle in canonical form. The search runs
// once per Analyzer; callers get their own copy.
func (a *Analyzer) Cycles() [][]string {
	cycles := a.cycles()
	if len(cycles) == 0 {
		return nil
	}
	out := make([][]string, len(cycles))
	for i, c := range cycles {
		out[i] = slices.Clone(c)
	}
	return out
}

// CycleDiagnostics reports one circular-dependency diagnostic per cycle.
func (a *Analyzer) CycleDiagnostics() []model.Diagnostic {
	var out []model.Diagnostic
	for _, c := range a.cycles() {
		out = append(out, model.CircularDependency{Nodes: slices.Clone(c)})
	}
	return out
}

// DanglingDiagnostics reports every reference to an id no resource has, once
// per dependent and missing id.
func (a *Analyzer) DanglingDiagnostics() []model.Diagnostic {
	var out []model.Diagnostic
	for i, r := range a.resources {
		if a.byID[r.ID] != i {
			continue
		}
		for _, dep := range r.Dependencies() {
			if _, ok := a.byID[dep]; ok {
				continue
			}
			out = append(out, model.DanglingDependency{
				DependentID:   r.ID,
				DependentType: r.Type,
				MissingID:     dep,
				At:            r.DependencyOrigin(),
			})
		}
	}
	return out
}
