package hcl_adapter

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/plangridgo/internal/cst"
)

// Parser is the HCL native-syntax implementation of cst.Parser.
type Parser struct{}

// NewParser creates a new HCL parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses one document. The returned CST is always non-nil; when the
// source has syntax errors it holds whatever HCL managed to recover.
func (p *Parser) Parse(src cst.Source) cst.ParseResult {
	file, diags := hclsyntax.ParseConfig(src.Text, src.Name, hcl.InitialPos)

	conv := &converter{src: src.Text, document: src.Name}
	doc := &cst.DocumentNode{
		Name:   src.Name,
		Origin: conv.documentOrigin(),
	}
	if file != nil {
		if body, ok := file.Body.(*hclsyntax.Body); ok {
			doc.Resources = conv.resources(body)
		}
	}

	comments, lexDiags := lexComments(src.Text, src.Name)
	diags = append(diags, lexDiags...)

	errs := parseErrors(diags, src.Name)
	return cst.ParseResult{
		Document: doc,
		Comments: comments,
		Source:   src.Text,
		Success:  len(errs) == 0,
		Errors:   errs,
	}
}

// sortedAttributes returns body attributes in source order. hclsyntax keeps
// them in a map.
func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}
