package decoder

import (
	"errors"
	"strconv"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
)

func (d *resourceDecoder) attributeValue(attr cst.AttributeNode) (model.Value, bool) {
	if attr.Key == model.DependsOnKey {
		return d.dependency(attr.Key, attr.Value, true)
	}
	v, ok := d.value(attr.Key, attr.Value)
	if !ok {
		d.report(model.UnsupportedAttributeValue{
			ResourceID: d.id,
			Key:        attr.Key,
			Shape:      shape(attr.Value),
			At:         model.OriginOf(attr.Value.Span()),
		})
	}
	return v, ok
}

// value decodes a non-dependency value. It reports nothing for its own node;
// the caller decides whether a failure is an attribute or an element.
func (d *resourceDecoder) value(key string, n cst.ValueNode) (model.Value, bool) {
	switch v := n.(type) {
	case cst.LiteralNode:
		return literal(v)
	case cst.IdentNode:
		return model.Reference{ID: v.Name}, true
	case cst.TupleNode:
		elems := make([]model.Value, 0, len(v.Elements))
		for _, el := range v.Elements {
			ev, ok := d.value(key, el)
			if !ok {
				d.report(model.UnsupportedArrayElement{
					ResourceID: d.id,
					Key:        key,
					Shape:      shape(el),
					At:         model.OriginOf(el.Span()),
				})
				continue
			}
			elems = append(elems, ev)
		}
		return model.Array{Elements: elems}, true
	}
	return nil, false
}

// dependency decodes a depends_on value. Quoted strings are quoted
// identifiers here. Literals that cannot name a resource are kept as
// primitives and reported; they add no edge.
func (d *resourceDecoder) dependency(key string, n cst.ValueNode, top bool) (model.Value, bool) {
	switch v := n.(type) {
	case cst.IdentNode:
		return model.Reference{ID: v.Name}, true
	case cst.LiteralNode:
		if v.Kind == cst.LiteralString {
			return model.Reference{ID: v.Text}, true
		}
		p, ok := literal(v)
		if ok {
			d.report(model.InvalidDependencyValue{ResourceID: d.id, Value: v.Text, At: model.OriginOf(v.Origin)})
			return p, true
		}
	case cst.TupleNode:
		elems := make([]model.Value, 0, len(v.Elements))
		for _, el := range v.Elements {
			ev, ok := d.dependency(key, el, false)
			if ok {
				elems = append(elems, ev)
			}
		}
		return model.Array{Elements: elems}, true
	}

	if top {
		d.report(model.UnsupportedAttributeValue{ResourceID: d.id, Key: key, Shape: shape(n), At: model.OriginOf(n.Span())})
	} else {
		d.report(model.UnsupportedArrayElement{ResourceID: d.id, Key: key, Shape: shape(n), At: model.OriginOf(n.Span())})
	}
	return nil, false
}

func literal(n cst.LiteralNode) (model.Value, bool) {
	switch n.Kind {
	case cst.LiteralString:
		return model.String(n.Text), true
	case cst.LiteralNumber:
		f, err := strconv.ParseFloat(n.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, false
		}
		// Out of range literals keep their sign as an infinity.
		return model.Number(f), true
	case cst.LiteralBool:
		return model.Bool(n.Text == "true"), true
	case cst.LiteralNull:
		return model.Null(), true
	}
	return nil, false
}

func shape(n cst.ValueNode) string {
	switch v := n.(type) {
	case cst.UnsupportedNode:
		return v.Shape
	case cst.LiteralNode:
		return string(v.Kind)
	case cst.IdentNode:
		return "identifier"
	case cst.TupleNode:
		return "list"
	}
	return "expression"
}
