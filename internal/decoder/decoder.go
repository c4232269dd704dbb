package decoder

import (
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
)

// Result is the outcome of a decode.
type Result struct {
	// Resources is always populated with whatever could be decoded, even
	// when Success is false.
	Resources   []model.Resource
	Diagnostics []model.Diagnostic
	// Document is nil when any diagnostic is an error.
	Document *model.Document
	Success  bool
}

// Decode decodes a single document.
func Decode(doc *cst.DocumentNode) Result {
	return DecodeAll(doc)
}

// DecodeAll decodes several documents as one resource set. Duplicate ids are
// resolved across documents in argument order.
func DecodeAll(docs ...*cst.DocumentNode) Result {
	var (
		all   []model.Resource
		diags []model.Diagnostic
	)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, node := range doc.Resources {
			d := &resourceDecoder{node: node}
			res, ok := d.decode()
			diags = append(diags, d.diags...)
			if ok {
				all = append(all, res)
			}
		}
	}

	kept, dupDiags := dedupe(all)
	diags = append(diags, dupDiags...)

	result := Result{
		Resources:   kept,
		Diagnostics: diags,
		Success:     !model.HasErrors(diags),
	}
	if result.Success {
		result.Document = &model.Document{Resources: kept}
	}
	return result
}

// dedupe keeps the first resource for each id and reports every later one.
func dedupe(resources []model.Resource) ([]model.Resource, []model.Diagnostic) {
	var diags []model.Diagnostic
	first := make(map[string]int, len(resources))
	kept := make([]model.Resource, 0, len(resources))
	for _, r := range resources {
		if i, ok := first[r.ID]; ok {
			diags = append(diags, model.DuplicateID{
				ID:      r.ID,
				Type:    r.Type,
				Kept:    kept[i].Origin,
				Dropped: r.Origin,
			})
			continue
		}
		first[r.ID] = len(kept)
		kept = append(kept, r)
	}
	return kept, diags
}
