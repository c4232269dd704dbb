package lspconv

import (
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/specialistvlad/plangridgo/internal/report"
	"github.com/specialistvlad/plangridgo/internal/sourceindex"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Source is the value of protocol.Diagnostic.Source.
const Source = "plangrid"

// Converter maps diagnostics of one project onto its documents.
type Converter struct {
	indexes map[string]*sourceindex.Index
	order   []string
	origins map[string]*model.Origin
}

// New creates a Converter over the indexed documents. Resources are used
// to place diagnostics that have no location of their own.
func New(indexes []*sourceindex.Index, resources []model.Resource) *Converter {
	c := &Converter{
		indexes: make(map[string]*sourceindex.Index, len(indexes)),
		origins: make(map[string]*model.Origin, len(resources)),
	}
	for _, idx := range indexes {
		if _, ok := c.indexes[idx.Document()]; !ok {
			c.order = append(c.order, idx.Document())
		}
		c.indexes[idx.Document()] = idx
	}
	for _, r := range resources {
		if _, ok := c.origins[r.ID]; !ok && r.Origin != nil {
			c.origins[r.ID] = r.Origin
		}
	}
	return c
}

// Range converts a byte span of document into a protocol range. Unknown
// documents yield a zero range.
func (c *Converter) Range(document string, startByte, endByte int) protocol.Range {
	idx, ok := c.indexes[document]
	if !ok {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: position(idx, startByte),
		End:   position(idx, endByte),
	}
}

func position(idx *sourceindex.Index, b int) protocol.Position {
	src := idx.Source()
	b = max(0, min(b, len(src)))
	row := idx.RowOf(b)
	return protocol.Position{
		Line:      uint32(row),
		Character: uint32(utf16Len(src[idx.LineStart(row):b])),
	}
}

func utf16Len(p []byte) int {
	n := 0
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		p = p[size:]
		n += utf16.RuneLen(r)
	}
	return n
}

// location returns where d is shown. A cycle is attached to the resource
// of its first node.
func (c *Converter) location(d model.Diagnostic) *model.Origin {
	if at := d.Location(); at != nil {
		return at
	}
	if cyc, ok := d.(model.CircularDependency); ok && len(cyc.Nodes) > 0 {
		return c.origins[cyc.Nodes[0]]
	}
	return nil
}

// Diagnostic converts d. It returns false when d cannot be placed in any
// known document.
func (c *Converter) Diagnostic(d model.Diagnostic) (protocol.Diagnostic, string, bool) {
	at := c.location(d)
	if at == nil {
		return protocol.Diagnostic{}, "", false
	}
	if _, ok := c.indexes[at.Document]; !ok {
		return protocol.Diagnostic{}, "", false
	}

	out := protocol.Diagnostic{
		Range:    c.Range(at.Document, at.StartByte, at.EndByte),
		Severity: severity(d.Severity()),
		Code:     string(d.Code()),
		Source:   Source,
		Message:  report.Message(d),
	}
	if dup, ok := d.(model.DuplicateID); ok && dup.Kept != nil {
		out.RelatedInformation = []protocol.DiagnosticRelatedInformation{{
			Location: protocol.Location{
				URI:   protocol.DocumentURI(uri.File(dup.Kept.Document)),
				Range: c.Range(dup.Kept.Document, dup.Kept.StartByte, dup.Kept.EndByte),
			},
			Message: "first definition of " + dup.ID,
		}}
	}
	return out, at.Document, true
}

// SyntaxDiagnostic converts a parse error.
func (c *Converter) SyntaxDiagnostic(err cst.ParseError) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    c.Range(err.Document, err.StartByte, err.EndByte),
		Severity: protocol.DiagnosticSeverityError,
		Code:     report.SyntaxErrorCode,
		Source:   Source,
		Message:  err.Message,
	}
}

func severity(s model.Severity) protocol.DiagnosticSeverity {
	if s == model.SeverityError {
		return protocol.DiagnosticSeverityError
	}
	return protocol.DiagnosticSeverityWarning
}

// Publish groups parse errors and diagnostics by document. Every indexed
// document gets an entry, empty ones included, so a client clears stale
// markers. Diagnostics that cannot be placed are dropped.
func (c *Converter) Publish(errs []cst.ParseError, diags []model.Diagnostic) []protocol.PublishDiagnosticsParams {
	byDoc := make(map[string][]protocol.Diagnostic, len(c.order))
	for _, err := range errs {
		if _, ok := c.indexes[err.Document]; ok {
			byDoc[err.Document] = append(byDoc[err.Document], c.SyntaxDiagnostic(err))
		}
	}
	for _, d := range diags {
		if out, doc, ok := c.Diagnostic(d); ok {
			byDoc[doc] = append(byDoc[doc], out)
		}
	}

	docs := slices.Sorted(slices.Values(c.order))
	params := make([]protocol.PublishDiagnosticsParams, 0, len(docs))
	for _, doc := range docs {
		list := byDoc[doc]
		if list == nil {
			list = []protocol.Diagnostic{}
		}
		params = append(params, protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri.File(doc)),
			Diagnostics: list,
		})
	}
	return params
}
