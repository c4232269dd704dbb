package hcl_adapter

import (
	"bytes"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/plangridgo/internal/cst"
)

// lexComments extracts every comment token in byte order.
//
// HCL line comments own their terminating newline. The newline is trimmed so
// a token covers the comment text only and starts and ends on the same row.
func lexComments(src []byte, document string) ([]cst.CommentToken, hcl.Diagnostics) {
	tokens, diags := hclsyntax.LexConfig(src, document, hcl.InitialPos)

	var out []cst.CommentToken
	for _, tok := range tokens {
		if tok.Type != hclsyntax.TokenComment {
			continue
		}
		text := tok.Bytes
		lineComment := !bytes.HasPrefix(text, []byte("/*"))
		if lineComment {
			text = bytes.TrimRight(text, "\r\n")
		}

		endRow := tok.Range.End.Line - 1
		if lineComment {
			endRow = tok.Range.Start.Line - 1
		}
		out = append(out, cst.CommentToken{
			Text:      string(text),
			StartByte: tok.Range.Start.Byte,
			EndByte:   tok.Range.Start.Byte + len(text),
			StartRow:  tok.Range.Start.Line - 1,
			EndRow:    endRow,
			Document:  document,
		})
	}
	return out, diags
}
