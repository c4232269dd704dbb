package hcl_adapter

import (
	"bytes"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/zclconf/go-cty/cty"
)

// converter copies hclsyntax nodes into cst values. Nothing it returns
// points back into the hclsyntax tree.
type converter struct {
	src      []byte
	document string
}

func (c *converter) origin(r hcl.Range) cst.Origin {
	return cst.Origin{
		StartByte: r.Start.Byte,
		EndByte:   r.End.Byte,
		StartRow:  r.Start.Line - 1,
		EndRow:    r.End.Line - 1,
		Document:  c.document,
	}
}

func (c *converter) documentOrigin() cst.Origin {
	return cst.Origin{
		StartByte: 0,
		EndByte:   len(c.src),
		StartRow:  0,
		EndRow:    bytes.Count(c.src, []byte("\n")),
		Document:  c.document,
	}
}

func (c *converter) text(r hcl.Range) string {
	if r.Start.Byte < 0 || r.End.Byte > len(c.src) || r.Start.Byte > r.End.Byte {
		return ""
	}
	return string(c.src[r.Start.Byte:r.End.Byte])
}

func (c *converter) resources(body *hclsyntax.Body) []cst.ResourceNode {
	out := make([]cst.ResourceNode, 0, len(body.Blocks))
	for _, block := range body.Blocks {
		out = append(out, c.resource(block))
	}
	// Top-level attributes are not resources; the decoder never sees them.
	return out
}

func (c *converter) resource(block *hclsyntax.Block) cst.ResourceNode {
	node := cst.ResourceNode{
		Type:   block.Type,
		Header: c.origin(hcl.RangeBetween(block.TypeRange, block.OpenBraceRange)),
		Origin: c.origin(block.Range()),
	}

	for i, label := range block.Labels {
		var rng hcl.Range
		if i < len(block.LabelRanges) {
			rng = block.LabelRanges[i]
		}
		quoted := rng.Start.Byte < len(c.src) && c.src[rng.Start.Byte] == '"'
		node.Labels = append(node.Labels, cst.LabelNode{
			Text:   label,
			Quoted: quoted,
			Origin: c.origin(rng),
		})
	}

	if block.Body == nil {
		return node
	}
	for _, attr := range sortedAttributes(block.Body) {
		node.Attributes = append(node.Attributes, cst.AttributeNode{
			Key:    attr.Name,
			Value:  c.value(attr.Expr),
			Raw:    c.text(attr.Expr.Range()),
			Origin: c.origin(attr.SrcRange),
		})
	}
	for _, nested := range block.Body.Blocks {
		node.Blocks = append(node.Blocks, cst.BlockNode{
			Type:   nested.Type,
			Origin: c.origin(nested.Range()),
		})
	}
	return node
}

func (c *converter) value(expr hclsyntax.Expression) cst.ValueNode {
	rng := expr.Range()
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		if lit, ok := c.literal(e.Val, rng); ok {
			return lit
		}
	case *hclsyntax.TemplateExpr:
		if s, ok := stringLiteral(e); ok {
			return cst.LiteralNode{Kind: cst.LiteralString, Text: s, Origin: c.origin(rng)}
		}
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) == 1 {
			if root, ok := e.Traversal[0].(hcl.TraverseRoot); ok {
				return cst.IdentNode{Name: root.Name, Origin: c.origin(rng)}
			}
		}
	case *hclsyntax.TupleConsExpr:
		elems := make([]cst.ValueNode, 0, len(e.Exprs))
		for _, el := range e.Exprs {
			elems = append(elems, c.value(el))
		}
		return cst.TupleNode{Elements: elems, Origin: c.origin(rng)}
	case *hclsyntax.UnaryOpExpr:
		// -1 arrives as a negation of a positive literal.
		if e.Op == hclsyntax.OpNegate {
			if lv, ok := e.Val.(*hclsyntax.LiteralValueExpr); ok && !lv.Val.IsNull() && lv.Val.Type() == cty.Number {
				return cst.LiteralNode{Kind: cst.LiteralNumber, Text: c.text(rng), Origin: c.origin(rng)}
			}
		}
	case *hclsyntax.ParenthesesExpr:
		return c.value(e.Expression)
	}
	return cst.UnsupportedNode{Shape: shapeName(expr), Raw: c.text(rng), Origin: c.origin(rng)}
}

func (c *converter) literal(v cty.Value, rng hcl.Range) (cst.LiteralNode, bool) {
	origin := c.origin(rng)
	if v.IsNull() {
		return cst.LiteralNode{Kind: cst.LiteralNull, Text: "null", Origin: origin}, true
	}
	if !v.IsKnown() {
		return cst.LiteralNode{}, false
	}
	switch v.Type() {
	case cty.Bool:
		text := "false"
		if v.True() {
			text = "true"
		}
		return cst.LiteralNode{Kind: cst.LiteralBool, Text: text, Origin: origin}, true
	case cty.Number:
		text := c.text(rng)
		if text == "" {
			text = v.AsBigFloat().Text('g', -1)
		}
		return cst.LiteralNode{Kind: cst.LiteralNumber, Text: text, Origin: origin}, true
	case cty.String:
		return cst.LiteralNode{Kind: cst.LiteralString, Text: v.AsString(), Origin: origin}, true
	}
	return cst.LiteralNode{}, false
}

// stringLiteral reports whether a template is a plain quoted string with no
// interpolation or directives.
func stringLiteral(t *hclsyntax.TemplateExpr) (string, bool) {
	switch len(t.Parts) {
	case 0:
		return "", true
	case 1:
		lit, ok := t.Parts[0].(*hclsyntax.LiteralValueExpr)
		if !ok || lit.Val.IsNull() || !lit.Val.IsKnown() || lit.Val.Type() != cty.String {
			return "", false
		}
		return lit.Val.AsString(), true
	}
	return "", false
}

func shapeName(expr hclsyntax.Expression) string {
	switch expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		return "function call"
	case *hclsyntax.ObjectConsExpr:
		return "object"
	case *hclsyntax.TemplateExpr, *hclsyntax.TemplateWrapExpr:
		return "template"
	case *hclsyntax.ScopeTraversalExpr, *hclsyntax.RelativeTraversalExpr:
		return "traversal"
	case *hclsyntax.BinaryOpExpr, *hclsyntax.UnaryOpExpr:
		return "operation"
	case *hclsyntax.ConditionalExpr:
		return "conditional"
	case *hclsyntax.ForExpr:
		return "for expression"
	case *hclsyntax.IndexExpr, *hclsyntax.SplatExpr:
		return "index"
	}
	return "expression"
}
