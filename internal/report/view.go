package report

import (
	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/dag"
	"github.com/specialistvlad/plangridgo/internal/model"
)

// SyntaxErrorCode is the code reported for parse errors.
const SyntaxErrorCode = "syntax-error"

// Entry is the serializable form of one problem.
type Entry struct {
	Code     string `json:"code" yaml:"code"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Document string `json:"document,omitempty" yaml:"document,omitempty"`
	// Line and Column are 1-based; zero means unknown.
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Entries converts diagnostics in order.
func Entries(diags []model.Diagnostic) []Entry {
	out := make([]Entry, 0, len(diags))
	for _, d := range diags {
		e := Entry{
			Code:     string(d.Code()),
			Severity: string(d.Severity()),
			Message:  Message(d),
		}
		if at := d.Location(); at != nil {
			e.Document = at.Document
			e.Line = at.StartRow + 1
		}
		out = append(out, e)
	}
	return out
}

// SyntaxEntries converts parse errors in order.
func SyntaxEntries(errs []cst.ParseError) []Entry {
	out := make([]Entry, 0, len(errs))
	for _, err := range errs {
		out = append(out, Entry{
			Code:     SyntaxErrorCode,
			Severity: string(model.SeverityError),
			Message:  err.Message,
			Document: err.Document,
			Line:     err.Line,
			Column:   err.Column,
		})
	}
	return out
}

// TreeView is the serializable form of a dependency tree.
type TreeView struct {
	ID        string     `json:"id" yaml:"id"`
	Kind      string     `json:"kind" yaml:"kind"`
	Type      string     `json:"type,omitempty" yaml:"type,omitempty"`
	Complete  bool       `json:"complete,omitempty" yaml:"complete,omitempty"`
	Truncated bool       `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Children  []TreeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree converts a dependency tree.
func Tree(n *dag.TreeNode) TreeView {
	v := TreeView{ID: n.ID, Kind: string(n.Kind), Truncated: n.Truncated}
	if n.Resource != nil {
		v.Type = string(n.Resource.Type)
		v.Complete = n.Resource.Complete
	}
	for _, c := range n.Children {
		v.Children = append(v.Children, Tree(c))
	}
	return v
}

// ChainsView is the serializable form of a chain search.
type ChainsView struct {
	Root   string     `json:"root" yaml:"root"`
	Chains [][]string `json:"chains" yaml:"chains"`
}
