package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/plangridgo/internal/exporter"
	"github.com/specialistvlad/plangridgo/internal/model"
)

// ErrNotFormattable is returned by Format for documents it cannot rewrite
// without changing or losing content.
var ErrNotFormattable = errors.New("document cannot be formatted")

// lossyCodes are the decode diagnostics whose source text has no place in
// the decoded resources, so exporting them would drop it.
var lossyCodes = map[model.Code]bool{
	model.CodeUnknownResourceType:       true,
	model.CodeMissingResourceID:         true,
	model.CodeUnknownModifier:           true,
	model.CodeCompleteOnUnsupportedType: true,
	model.CodeUnsupportedBlock:          true,
	model.CodeUnsupportedAttributeValue: true,
	model.CodeUnsupportedArrayElement:   true,
	model.CodeDuplicateID:               true,
}

// Format renders a document in canonical layout, keeping its comments.
func (a *App) Format(doc *Document) (string, error) {
	if !doc.Parse.Success {
		return "", fmt.Errorf("%s: %w: %d syntax errors", doc.Name, ErrNotFormattable, len(doc.Parse.Errors))
	}
	if model.HasErrors(doc.Decode.Diagnostics) {
		return "", fmt.Errorf("%s: %w: invalid resources", doc.Name, ErrNotFormattable)
	}
	if lossy := lossyDiagnostics(doc.Decode.Diagnostics); len(lossy) > 0 {
		return "", fmt.Errorf("%s: %w: would drop content (%v)", doc.Name, ErrNotFormattable, lossy)
	}
	return exporter.Export(doc.Decode.Resources, doc.Index), nil
}

// lossyDiagnostics returns the distinct lossy codes among diags, sorted.
func lossyDiagnostics(diags []model.Diagnostic) []model.Code {
	var out []model.Code
	for _, d := range diags {
		if lossyCodes[d.Code()] && !slices.Contains(out, d.Code()) {
			out = append(out, d.Code())
		}
	}
	slices.Sort(out)
	return out
}
