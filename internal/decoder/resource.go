package decoder

import (
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
)

type resourceDecoder struct {
	node  cst.ResourceNode
	id    string
	diags []model.Diagnostic
}

func (d *resourceDecoder) report(diag model.Diagnostic) {
	d.diags = append(d.diags, diag)
}

func (d *resourceDecoder) decode() (model.Resource, bool) {
	node := d.node
	rtype := model.ResourceType(node.Type)
	if !rtype.Valid() {
		d.report(model.UnknownResourceType{Type: node.Type, At: model.OriginOf(node.Header)})
		return model.Resource{}, false
	}
	if len(node.Labels) == 0 {
		d.report(model.MissingResourceID{Type: rtype, At: model.OriginOf(node.Header)})
		return model.Resource{}, false
	}

	labels := node.Labels
	keywords := 0
	if isKeyword(labels[0]) && len(labels) > 1 {
		// `task complete build {}`: the keyword sits where the id belongs.
		// The resource is still recorded for partial consumers, but the
		// document as a whole is invalid.
		d.report(model.InvalidCompleteKeywordPosition{ResourceType: rtype, At: model.OriginOf(labels[0].Origin)})
		keywords++
		labels = labels[1:]
	}

	d.id = labels[0].Text
	for _, l := range labels[1:] {
		if isKeyword(l) {
			keywords++
			if keywords == 2 {
				d.report(model.DuplicateCompleteKeyword{ResourceID: d.id, At: model.OriginOf(l.Origin)})
			}
			continue
		}
		d.report(model.UnknownModifier{ResourceID: d.id, Modifier: l.Text, At: model.OriginOf(l.Origin)})
	}

	complete := keywords > 0
	if complete && !rtype.SupportsComplete() {
		d.report(model.CompleteOnUnsupportedType{ResourceID: d.id, ResourceType: rtype, At: model.OriginOf(node.Header)})
		complete = false
	}

	res := model.Resource{
		Type:     rtype,
		ID:       d.id,
		Complete: complete,
		Origin:   model.OriginOf(node.Origin),
	}

	for _, attr := range node.Attributes {
		value, ok := d.attributeValue(attr)
		if !ok {
			continue
		}
		if complete && attr.Key == model.CompleteKeyword && !isTrue(value) {
			d.report(model.CompleteKeywordAttributeConflict{
				ResourceID:     d.id,
				AttributeValue: attr.Raw,
				At:             model.OriginOf(attr.Origin),
			})
		}
		res.Attributes = append(res.Attributes, model.Attribute{
			Key:    attr.Key,
			Value:  value,
			Raw:    attr.Raw,
			Origin: model.OriginOf(attr.Origin),
		})
	}

	for _, b := range node.Blocks {
		d.report(model.UnsupportedBlock{ResourceID: d.id, BlockType: b.Type, At: model.OriginOf(b.Origin)})
	}
	return res, true
}

func isKeyword(l cst.LabelNode) bool {
	return !l.Quoted && l.Text == model.CompleteKeyword
}

func isTrue(v model.Value) bool {
	p, ok := v.(model.Primitive)
	if !ok {
		return false
	}
	b, ok := p.V.(bool)
	return ok && b
}
