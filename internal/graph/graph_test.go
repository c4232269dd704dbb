package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddNodeIsIdempotent(t *testing.T) {
	g := New[string]()
	assert.True(t, g.AddNode("a"))
	assert.False(t, g.AddNode("a"))
	assert.Equal(t, 1, g.Len())
}

func TestGraph_AddEdgeCreatesNodesAndDeduplicates(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes())
	assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
	assert.Equal(t, []string{"a"}, g.Predecessors("b"))
	assert.True(t, g.HasEdge("a", "b"))
	assert.False(t, g.HasEdge("b", "a"))
	assert.Empty(t, g.Successors("missing"))
}

func TestGraph_SuccessorsReturnsCopy(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b")
	s := g.Successors("a")
	s[0] = "z"
	assert.Equal(t, []string{"b"}, g.Successors("a"))
}

func TestGraph_Cycles(t *testing.T) {
	testCases := []struct {
		name  string
		nodes []string
		edges [][2]string
		want  [][]string
	}{
		{
			name:  "acyclic graph has no cycles",
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}},
			want:  nil,
		},
		{
			name:  "three node cycle is reported once",
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  [][]string{{"a", "b", "c", "a"}},
		},
		{
			name:  "cycle is canonical regardless of insertion order",
			nodes: []string{"c", "b", "a"},
			edges: [][2]string{{"c", "a"}, {"b", "c"}, {"a", "b"}},
			want:  [][]string{{"a", "b", "c", "a"}},
		},
		{
			name:  "two node cycle",
			edges: [][2]string{{"b", "a"}, {"a", "b"}},
			want:  [][]string{{"a", "b", "a"}},
		},
		{
			name:  "self loop",
			edges: [][2]string{{"a", "a"}},
			want:  [][]string{{"a", "a"}},
		},
		{
			name:  "two disjoint cycles",
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"x", "y"}, {"y", "x"}},
			want:  [][]string{{"a", "b", "a"}, {"x", "y", "x"}},
		},
		{
			name:  "cycles sharing a node",
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}, {"c", "b"}},
			want:  [][]string{{"a", "b", "a"}, {"b", "c", "b"}},
		},
		{
			name:  "overlapping cycles through shared nodes are all listed",
			edges: [][2]string{{"a", "d"}, {"a", "c"}, {"b", "a"}, {"b", "e"}, {"c", "b"}, {"d", "b"}, {"e", "a"}},
			want: [][]string{
				{"a", "d", "b", "a"},
				{"a", "d", "b", "e", "a"},
				{"a", "c", "b", "a"},
				{"a", "c", "b", "e", "a"},
			},
		},
		{
			name:  "complete graph on three nodes",
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"a", "c"}, {"c", "a"}, {"b", "c"}, {"c", "b"}},
			want: [][]string{
				{"a", "b", "a"},
				{"a", "c", "a"},
				{"b", "c", "b"},
				{"a", "b", "c", "a"},
				{"a", "c", "b", "a"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := New[string]()
			for _, n := range tc.nodes {
				g.AddNode(n)
			}
			for _, e := range tc.edges {
				g.AddEdge(e[0], e[1])
			}
			assert.ElementsMatch(t, tc.want, g.Cycles())
		})
	}
}

func TestGraph_CyclesOnDeepChain(t *testing.T) {
	g := New[int]()
	const depth = 3000
	for i := 0; i < depth; i++ {
		g.AddEdge(i, i+1)
	}
	g.AddEdge(depth, 0)

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, 0, cycles[0][0])
	assert.Equal(t, 0, cycles[0][len(cycles[0])-1])
	assert.Len(t, cycles[0], depth+2)
}
