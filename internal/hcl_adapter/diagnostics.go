package hcl_adapter

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plangridgo/internal/cst"
)

// parseErrors maps HCL diagnostics onto structured parse errors. Only
// error-severity diagnostics are kept; the same problem reported by both the
// lexer and the parser is reported once.
func parseErrors(diags hcl.Diagnostics, document string) []cst.ParseError {
	var out []cst.ParseError
	seen := make(map[string]bool)
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		pe := cst.ParseError{
			Severity: "error",
			Kind:     errorKind(d.Summary),
			Message:  d.Summary,
			Document: document,
		}
		if d.Detail != "" {
			pe.Message = d.Summary + ": " + d.Detail
		}
		if d.Subject != nil {
			pe.Line = d.Subject.Start.Line
			pe.Column = d.Subject.Start.Column
			pe.StartByte = d.Subject.Start.Byte
			pe.EndByte = d.Subject.End.Byte
		}
		pe.Expected = expectedTokens(d.Summary)

		key := pe.Message
		if d.Subject != nil {
			key += "@" + d.Subject.String()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, pe)
	}
	return out
}

func errorKind(summary string) cst.ErrorKind {
	s := strings.ToLower(summary)
	if strings.HasPrefix(s, "missing") || strings.HasPrefix(s, "unclosed") || strings.Contains(s, "required") {
		return cst.MissingToken
	}
	return cst.UnexpectedToken
}

// expectedTokens recovers the token name from HCL summaries such as
// "Missing newline after argument" or "Unclosed configuration block".
func expectedTokens(summary string) []string {
	s := strings.ToLower(summary)
	switch {
	case strings.HasPrefix(s, "unclosed"):
		return []string{"}"}
	case strings.Contains(s, "newline"):
		return []string{"newline"}
	case strings.Contains(s, "key/value separator"), strings.Contains(s, "equals"):
		return []string{"="}
	case strings.Contains(s, "block definition"), strings.Contains(s, "open brace"):
		return []string{"{"}
	}
	return nil
}
