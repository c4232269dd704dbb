package dag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dependsOn(deps ...string) []model.Attribute {
	if len(deps) == 0 {
		return nil
	}
	refs := make([]model.Value, 0, len(deps))
	for _, d := range deps {
		refs = append(refs, model.Reference{ID: d})
	}
	return []model.Attribute{{Key: model.DependsOnKey, Value: model.Array{Elements: refs}}}
}

func task(id string, deps ...string) model.Resource {
	return model.Resource{Type: model.TypeTask, ID: id, Attributes: dependsOn(deps...)}
}

func doneTask(id string, deps ...string) model.Resource {
	r := task(id, deps...)
	r.Complete = true
	return r
}

func milestone(id string, deps ...string) model.Resource {
	return model.Resource{Type: model.TypeMilestone, ID: id, Attributes: dependsOn(deps...)}
}

func TestBuild_DependenciesAndDependents(t *testing.T) {
	a := Build([]model.Resource{
		task("a", "b", "c"),
		task("b", "c"),
		task("c"),
	})

	assert.Equal(t, []string{"b", "c"}, a.Dependencies("a"))
	assert.Equal(t, []string{"a", "b"}, a.Dependents("c"))
	assert.Empty(t, a.Dependents("a"))

	_, ok := a.Resource("b")
	assert.True(t, ok)
	_, ok = a.Resource("zzz")
	assert.False(t, ok)
}

func TestCycleDiagnostics(t *testing.T) {
	t.Run("two resources depending on each other", func(t *testing.T) {
		a := Build([]model.Resource{task("a", "b"), task("b", "a")})
		diags := a.CycleDiagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, model.CircularDependency{Nodes: []string{"a", "b", "a"}}, diags[0])
	})

	t.Run("canonical regardless of declaration order", func(t *testing.T) {
		a := Build([]model.Resource{task("c", "a"), task("b", "c"), task("a", "b")})
		assert.Equal(t, [][]string{{"a", "b", "c", "a"}}, a.Cycles())
	})

	t.Run("overlapping cycles are each reported", func(t *testing.T) {
		a := Build([]model.Resource{
			task("a", "d", "c"),
			task("b", "a", "e"),
			task("c", "b"),
			task("d", "b"),
			task("e", "a"),
		})
		var got [][]string
		for _, d := range a.CycleDiagnostics() {
			got = append(got, d.(model.CircularDependency).Nodes)
		}
		assert.ElementsMatch(t, [][]string{
			{"a", "d", "b", "a"},
			{"a", "d", "b", "e", "a"},
			{"a", "c", "b", "a"},
			{"a", "c", "b", "e", "a"},
		}, got)
	})

	t.Run("returned cycles are copies", func(t *testing.T) {
		a := Build([]model.Resource{task("a", "a")})
		a.Cycles()[0][0] = "mutated"
		assert.Equal(t, model.CircularDependency{Nodes: []string{"a", "a"}}, a.CycleDiagnostics()[0])
	})

	t.Run("acyclic plan", func(t *testing.T) {
		a := Build([]model.Resource{task("a", "b"), task("b")})
		assert.Empty(t, a.CycleDiagnostics())
	})
}

func TestDanglingDiagnostics(t *testing.T) {
	origin := &model.Origin{StartRow: 4}
	res := task("a", "missing_id", "b", "missing_id")
	res.Attributes[0].Origin = origin

	a := Build([]model.Resource{res, milestone("b")})
	diags := a.DanglingDiagnostics()

	require.Len(t, diags, 1)
	assert.Equal(t, model.DanglingDependency{
		DependentID:   "a",
		DependentType: model.TypeTask,
		MissingID:     "missing_id",
		At:            origin,
	}, diags[0])
}

// render prints a tree one node per line, indented by depth.
func render(n *TreeNode) string {
	var b strings.Builder
	var walk func(n *TreeNode, depth int)
	walk = func(n *TreeNode, depth int) {
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), n.ID)
		if n.Kind != NodeResource {
			fmt.Fprintf(&b, " (%s)", n.Kind)
		}
		if n.Truncated {
			b.WriteString(" (truncated)")
		}
		b.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return b.String()
}

func TestDependencyTree_DefaultPolicy(t *testing.T) {
	a := Build([]model.Resource{
		milestone("release", "build", "shipped", "beta", "ghost"),
		task("build", "compile", "lint"),
		task("compile", "build"),
		task("lint"),
		doneTask("shipped", "lint"),
		milestone("beta", "lint"),
	})

	got := render(a.DependencyTree("release", nil, 0))
	want := strings.Join([]string{
		"release",
		"  build",
		"    compile",
		"      build (cycle)",
		"    lint",
		"  beta",
		"  ghost (missing)",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestDependencyTree_RootIsAlwaysExpanded(t *testing.T) {
	a := Build([]model.Resource{doneTask("root", "a"), task("a")})
	tree := a.DependencyTree("root", nil, 0)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "a", tree.Children[0].ID)
}

func TestDependencyTree_CycleBackToCompletedRoot(t *testing.T) {
	a := Build([]model.Resource{doneTask("root", "a"), task("a", "root")})

	assert.Equal(t, "root\n  a\n    root (cycle)\n", render(a.DependencyTree("root", nil, 0)))
}

func TestDependencyTree_CustomPolicyAndCeiling(t *testing.T) {
	a := Build([]model.Resource{task("a", "b"), task("b", "c"), task("c", "d"), task("d")})

	expandAll := func(model.Resource) Visit { return Expand }
	assert.Equal(t, "a\n  b\n    c (truncated)\n", render(a.DependencyTree("a", expandAll, 2)))

	leaves := func(model.Resource) Visit { return Leaf }
	assert.Equal(t, "a\n  b\n", render(a.DependencyTree("a", leaves, 0)))
}

func TestDependencyTree_UnknownRoot(t *testing.T) {
	a := Build(nil)
	tree := a.DependencyTree("nope", nil, 0)
	assert.Equal(t, NodeMissing, tree.Kind)
	assert.Empty(t, tree.Children)
}

func TestIncompleteLeafDependencyChains(t *testing.T) {
	testCases := []struct {
		name      string
		resources []model.Resource
		root      string
		want      [][]string
	}{
		{
			name: "keeps incomplete task leaves and drops completed ones",
			resources: []model.Resource{
				milestone("m", "a", "b"),
				task("a", "c"),
				task("c"),
				doneTask("b"),
			},
			root: "m",
			want: [][]string{{"m", "a", "c"}},
		},
		{
			name: "milestones and missing ids are leaves",
			resources: []model.Resource{
				task("root", "beta", "ghost"),
				milestone("beta", "x"),
				task("x"),
			},
			root: "root",
			want: [][]string{{"root", "beta"}, {"root", "ghost"}},
		},
		{
			name: "falls back to completed leaves",
			resources: []model.Resource{
				task("t", "x", "y"),
				doneTask("x"),
				doneTask("y"),
			},
			root: "t",
			want: [][]string{{"t", "x"}, {"t", "y"}},
		},
		{
			name: "loop under a milestone root gets a sentinel",
			resources: []model.Resource{
				milestone("m", "a"),
				task("a", "m"),
			},
			root: "m",
			want: [][]string{{"m", "a", LoopSentinel}},
		},
		{
			name: "loop under a task root is dropped",
			resources: []model.Resource{
				task("r", "a"),
				task("a", "r", "b"),
				task("b"),
			},
			root: "r",
			want: [][]string{{"r", "a", "b"}},
		},
		{
			name:      "task root without dependencies is its own leaf",
			resources: []model.Resource{task("solo")},
			root:      "solo",
			want:      [][]string{{"solo"}},
		},
		{
			name:      "unknown root",
			resources: []model.Resource{task("a")},
			root:      "nope",
			want:      nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := Build(tc.resources)
			got := a.IncompleteLeafDependencyChains(tc.root, ChainOptions{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIncompleteLeafDependencyChains_PrunesAtCeiling(t *testing.T) {
	a := Build([]model.Resource{
		task("root", "a"),
		task("a", "b"),
		task("b", "c"),
		task("c", "d"),
		task("d"),
	})

	var warnings []PruneWarning
	chains := a.IncompleteLeafDependencyChains("root", ChainOptions{
		MaxDepth: 2,
		OnPrune:  func(w PruneWarning) { warnings = append(warnings, w) },
	})

	assert.Empty(t, chains)
	require.Len(t, warnings, 1)
	assert.Equal(t, PruneWarning{RootID: "root", MaxDepth: 2}, warnings[0])
}

func TestIncompleteLeafDependencyChains_WarnsOncePerRoot(t *testing.T) {
	a := Build([]model.Resource{
		task("root", "a", "b"),
		task("a", "x"),
		task("b", "y"),
		task("x"),
		task("y"),
	})

	calls := 0
	chains := a.IncompleteLeafDependencyChains("root", ChainOptions{
		MaxDepth: 1,
		OnPrune:  func(PruneWarning) { calls++ },
	})
	assert.Empty(t, chains)
	assert.Equal(t, 1, calls)
}

func TestIncompleteLeafDependencyChains_DeepGraphUsesDefaultCeiling(t *testing.T) {
	var resources []model.Resource
	const n = DefaultMaxDepth + 50
	for i := 0; i < n; i++ {
		resources = append(resources, task(fmt.Sprintf("t%d", i), fmt.Sprintf("t%d", i+1)))
	}
	resources = append(resources, task(fmt.Sprintf("t%d", n)))

	var warned bool
	chains := Build(resources).IncompleteLeafDependencyChains("t0", ChainOptions{
		OnPrune: func(w PruneWarning) {
			warned = true
			assert.Equal(t, DefaultMaxDepth, w.MaxDepth)
		},
	})
	assert.Empty(t, chains)
	assert.True(t, warned)
}

func TestIncompleteLeafDependencyChains_Sorted(t *testing.T) {
	a := Build([]model.Resource{
		milestone("m", "z", "b", "a"),
		task("z"),
		task("b"),
		task("a"),
	})
	chains := a.IncompleteLeafDependencyChains("m", ChainOptions{
		Less: func(x, y []string) bool { return strings.Join(x, "/") < strings.Join(y, "/") },
	})
	assert.Equal(t, [][]string{{"m", "a"}, {"m", "b"}, {"m", "z"}}, chains)
}
