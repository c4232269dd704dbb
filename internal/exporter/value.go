package exporter

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// FormatValue returns the canonical text of v.
func FormatValue(v model.Value) string {
	switch val := v.(type) {
	case model.Primitive:
		return formatPrimitive(val)
	case model.Reference:
		return formatID(val.ID)
	case model.Array:
		parts := make([]string, 0, len(val.Elements))
		for _, el := range val.Elements {
			parts = append(parts, FormatValue(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "null"
}

func formatPrimitive(p model.Primitive) string {
	switch v := p.V.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return quote(v)
	case float64:
		switch {
		case math.IsInf(v, 1):
			return "1e999"
		case math.IsInf(v, -1):
			return "-1e999"
		case math.IsNaN(v):
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return string(hclwrite.TokensForValue(cty.NumberFloatVal(v)).Bytes())
	}
	return "null"
}

func quote(s string) string {
	return string(hclwrite.TokensForValue(cty.StringVal(s)).Bytes())
}

// formatID prints a resource id bare when it reads back as the same
// identifier, quoted otherwise.
func formatID(id string) string {
	switch id {
	case "true", "false", "null", model.CompleteKeyword:
		return quote(id)
	}
	if hclsyntax.ValidIdentifier(id) {
		return id
	}
	return quote(id)
}

// formatAttribute prefers the attribute's original text when it is safe to
// reuse.
func formatAttribute(a model.Attribute) string {
	if a.Raw != "" && rawReusable(a) {
		return a.Raw
	}
	return FormatValue(a.Value)
}

// rawReusable reports whether raw is a single-line, comment-free expression
// of a supported shape that still decodes to the attribute's value.
func rawReusable(a model.Attribute) bool {
	raw := a.Raw
	if strings.ContainsAny(raw, "\r\n#") || strings.Contains(raw, "//") || strings.Contains(raw, "/*") {
		return false
	}
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "", hcl.InitialPos)
	if diags.HasErrors() {
		return false
	}
	v, ok := exprValue(expr, a.Key == model.DependsOnKey)
	if !ok {
		return false
	}
	return reflect.DeepEqual(normalize(v), normalize(a.Value))
}

// exprValue mirrors the decoder for the shapes raw text may take.
func exprValue(expr hclsyntax.Expression, dependency bool) (model.Value, bool) {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return literalValue(e.Val)
	case *hclsyntax.TemplateExpr:
		if len(e.Parts) == 0 {
			if dependency {
				return model.Reference{ID: ""}, true
			}
			return model.String(""), true
		}
		if len(e.Parts) != 1 {
			return nil, false
		}
		lit, ok := e.Parts[0].(*hclsyntax.LiteralValueExpr)
		if !ok || lit.Val.IsNull() || lit.Val.Type() != cty.String {
			return nil, false
		}
		if dependency {
			return model.Reference{ID: lit.Val.AsString()}, true
		}
		return model.String(lit.Val.AsString()), true
	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, false
		}
		root, ok := e.Traversal[0].(hcl.TraverseRoot)
		if !ok {
			return nil, false
		}
		return model.Reference{ID: root.Name}, true
	case *hclsyntax.TupleConsExpr:
		elems := make([]model.Value, 0, len(e.Exprs))
		for _, el := range e.Exprs {
			v, ok := exprValue(el, dependency)
			if !ok {
				return nil, false
			}
			elems = append(elems, v)
		}
		return model.Array{Elements: elems}, true
	case *hclsyntax.UnaryOpExpr:
		if e.Op != hclsyntax.OpNegate {
			return nil, false
		}
		inner, ok := exprValue(e.Val, false)
		if !ok {
			return nil, false
		}
		if p, ok := inner.(model.Primitive); ok {
			if f, ok := p.V.(float64); ok {
				return model.Number(-f), true
			}
		}
	}
	return nil, false
}

func literalValue(v cty.Value) (model.Value, bool) {
	if v.IsNull() {
		return model.Null(), true
	}
	if !v.IsKnown() {
		return nil, false
	}
	switch v.Type() {
	case cty.Bool:
		return model.Bool(v.True()), true
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return model.Number(f), true
	case cty.String:
		return model.String(v.AsString()), true
	}
	return nil, false
}

// normalize treats nil and empty element slices alike.
func normalize(v model.Value) model.Value {
	arr, ok := v.(model.Array)
	if !ok {
		return v
	}
	elems := make([]model.Value, 0, len(arr.Elements))
	for _, el := range arr.Elements {
		elems = append(elems, normalize(el))
	}
	return model.Array{Elements: elems}
}
