package hcl_adapter_test

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/hcl_adapter"
	"github.com/specialistvlad/plangridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) cst.ParseResult {
	t.Helper()
	return hcl_adapter.NewParser().Parse(cst.Source{Name: "main.plan", Text: []byte(src)})
}

func TestParse_ResourceShape(t *testing.T) {
	src := testutil.Unindent(`
		task "build" complete {
		  estimate   = 3
		  title      = "Build it"
		  depends_on = [design, "setup"]
		}
	`)

	res := parse(t, src)

	require.True(t, res.Success)
	require.Len(t, res.Document.Resources, 1)
	r := res.Document.Resources[0]
	assert.Equal(t, "task", r.Type)
	require.Len(t, r.Labels, 2)
	assert.Equal(t, "build", r.Labels[0].Text)
	assert.True(t, r.Labels[0].Quoted)
	assert.Equal(t, "complete", r.Labels[1].Text)
	assert.False(t, r.Labels[1].Quoted)
	assert.Equal(t, 0, r.Origin.StartRow)
	assert.Equal(t, 4, r.Origin.EndRow)

	var keys []string
	for _, a := range r.Attributes {
		keys = append(keys, a.Key)
	}
	assert.Equal(t, []string{"estimate", "title", "depends_on"}, keys, "attributes keep source order")

	assert.Equal(t, cst.LiteralNode{Kind: cst.LiteralNumber, Text: "3", Origin: r.Attributes[0].Value.Span()}, r.Attributes[0].Value)
	assert.Equal(t, `"Build it"`, r.Attributes[1].Raw)

	tuple, ok := r.Attributes[2].Value.(cst.TupleNode)
	require.True(t, ok)
	require.Len(t, tuple.Elements, 2)
	assert.Equal(t, "design", tuple.Elements[0].(cst.IdentNode).Name)
	assert.Equal(t, cst.LiteralString, tuple.Elements[1].(cst.LiteralNode).Kind)
}

func TestParse_ValueShapes(t *testing.T) {
	tests := []struct {
		expr  string
		check func(t *testing.T, v cst.ValueNode)
	}{
		{"true", func(t *testing.T, v cst.ValueNode) {
			assert.Equal(t, cst.LiteralBool, v.(cst.LiteralNode).Kind)
		}},
		{"null", func(t *testing.T, v cst.ValueNode) {
			assert.Equal(t, cst.LiteralNull, v.(cst.LiteralNode).Kind)
		}},
		{"-2.5", func(t *testing.T, v cst.ValueNode) {
			lit := v.(cst.LiteralNode)
			assert.Equal(t, cst.LiteralNumber, lit.Kind)
			n, err := strconv.ParseFloat(lit.Text, 64)
			require.NoError(t, err)
			assert.Equal(t, -2.5, n)
		}},
		{"(x)", func(t *testing.T, v cst.ValueNode) {
			assert.Equal(t, "x", v.(cst.IdentNode).Name)
		}},
		{"upper(x)", func(t *testing.T, v cst.ValueNode) {
			u := v.(cst.UnsupportedNode)
			assert.Equal(t, "function call", u.Shape)
			assert.Equal(t, "upper(x)", u.Raw)
		}},
		{"a.b", func(t *testing.T, v cst.ValueNode) {
			assert.Equal(t, "traversal", v.(cst.UnsupportedNode).Shape)
		}},
		{`"${x}"`, func(t *testing.T, v cst.ValueNode) {
			assert.Equal(t, "template", v.(cst.UnsupportedNode).Shape)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			res := parse(t, "task a {\n  v = "+tc.expr+"\n}\n")
			require.True(t, res.Success)
			tc.check(t, res.Document.Resources[0].Attributes[0].Value)
		})
	}
}

func TestParse_Comments(t *testing.T) {
	src := "# lead\ntask a { // trail\n  /* body */\n}\n"

	res := parse(t, src)

	require.True(t, res.Success)
	want := []cst.CommentToken{
		{Text: "# lead", StartByte: 0, EndByte: 6, StartRow: 0, EndRow: 0, Document: "main.plan"},
		{Text: "// trail", StartByte: 16, EndByte: 24, StartRow: 1, EndRow: 1, Document: "main.plan"},
		{Text: "/* body */", StartByte: 27, EndByte: 37, StartRow: 2, EndRow: 2, Document: "main.plan"},
	}
	if diff := cmp.Diff(want, res.Comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := "task a {\n  x = 1 # c\n}\nmilestone m {}\n"
	if diff := cmp.Diff(parse(t, src), parse(t, src)); diff != "" {
		t.Errorf("parsing twice differs:\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	res := parse(t, "task a {\n  x = 1\n")

	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	e := res.Errors[0]
	assert.Equal(t, cst.MissingToken, e.Kind)
	assert.Equal(t, []string{"}"}, e.Expected)
	assert.Equal(t, "main.plan", e.Document)
	assert.Positive(t, e.Line)
	require.NotNil(t, res.Document, "a document is returned even when parsing fails")
}

func TestParse_NestedBlocksAreRecorded(t *testing.T) {
	res := parse(t, "task a {\n  meta {\n  }\n}\n")

	require.True(t, res.Success)
	require.Len(t, res.Document.Resources[0].Blocks, 1)
	assert.Equal(t, "meta", res.Document.Resources[0].Blocks[0].Type)
}
