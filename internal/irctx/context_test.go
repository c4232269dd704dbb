package irctx

import (
	"sync"
	"testing"

	"github.com/specialistvlad/plangridgo/internal/dag"
	"github.com/specialistvlad/plangridgo/internal/decoder"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/specialistvlad/plangridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, src string, opts Options) *Context {
	t.Helper()
	res := testutil.Parse(t, testutil.Unindent(src))
	return New(decoder.Decode(res.Document), opts)
}

func TestContext_MutualDependency(t *testing.T) {
	c := newContext(t, "task a { depends_on = b }\ntask b { depends_on = a }\n", Options{})

	assert.Len(t, c.Resources(), 2)
	assert.True(t, c.Success())
	require.NotNil(t, c.Document())

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, model.CircularDependency{Nodes: []string{"a", "b", "a"}}, diags[0])
	assert.Equal(t, [][]string{{"a", "b", "a"}}, c.Cycles())
}

func TestContext_DiagnosticsAggregatesAllSources(t *testing.T) {
	c := newContext(t, `
		task a urgent {
		  depends_on = [missing_id]
		}
		task b { depends_on = c }
		task c { depends_on = b }
	`, Options{})

	var got []model.Code
	for _, d := range c.Diagnostics() {
		got = append(got, d.Code())
	}
	assert.Equal(t, []model.Code{
		model.CodeUnknownModifier,
		model.CodeCircularDependency,
		model.CodeDanglingDependency,
	}, got)
	assert.Len(t, c.DecodeDiagnostics(), 1)
	assert.Len(t, c.CycleDiagnostics(), 1)

	dangling := c.DanglingDiagnostics()
	require.Len(t, dangling, 1)
	assert.Equal(t, "missing_id", dangling[0].(model.DanglingDependency).MissingID)
}

func TestContext_ReturnedSlicesDoNotAliasCache(t *testing.T) {
	c := newContext(t, "task a { depends_on = a }\n", Options{})

	first := c.Cycles()
	first[0][0] = "mutated"

	assert.Equal(t, [][]string{{"a", "a"}}, c.Cycles())
	d := c.Diagnostics()
	d[0] = nil
	assert.NotNil(t, c.Diagnostics()[0])
}

func TestContext_DependencyQueries(t *testing.T) {
	c := newContext(t, `
		milestone release {
		  depends_on = [build, docs]
		}
		task build {}
		task docs complete {}
	`, Options{})

	assert.Equal(t, []string{"build", "docs"}, c.Dependencies("release"))
	assert.Equal(t, []string{"release"}, c.Dependents("build"))

	tree := c.DependencyTree("release")
	require.Len(t, tree.Children, 1, "completed dependencies are hidden")
	assert.Equal(t, "build", tree.Children[0].ID)
	assert.Same(t, tree, c.DependencyTree("release"), "trees are cached per root")

	all := c.DependencyTreeWith("release", func(model.Resource) dag.Visit { return dag.Expand })
	assert.Len(t, all.Children, 2)

	r, ok := c.Resource("docs")
	require.True(t, ok)
	assert.True(t, r.Complete)
}

func TestContext_ChainsReplayPruneWarning(t *testing.T) {
	c := newContext(t, `
		task root { depends_on = a }
		task a { depends_on = b }
		task b { depends_on = c }
		task c { depends_on = d }
		task d {}
	`, Options{MaxDepth: 2})

	for i := 0; i < 2; i++ {
		var warnings []dag.PruneWarning
		chains := c.IncompleteLeafDependencyChains("root", dag.ChainOptions{
			OnPrune: func(w dag.PruneWarning) { warnings = append(warnings, w) },
		})
		assert.Empty(t, chains)
		require.Len(t, warnings, 1)
		assert.Equal(t, 2, warnings[0].MaxDepth)
	}

	chains := c.IncompleteLeafDependencyChains("root", dag.ChainOptions{MaxDepth: 10})
	assert.Equal(t, [][]string{{"root", "a", "b", "c", "d"}}, chains)
}

func TestContext_ConcurrentQueries(t *testing.T) {
	c := newContext(t, `
		milestone m { depends_on = [a, b] }
		task a { depends_on = b }
		task b {}
	`, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Empty(t, c.Diagnostics())
			assert.Equal(t, [][]string{{"m", "a", "b"}, {"m", "b"}}, c.IncompleteLeafDependencyChains("m", dag.ChainOptions{}))
			assert.NotNil(t, c.DependencyTree("m"))
		}()
	}
	wg.Wait()
}
