package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/specialistvlad/plangridgo/internal/dag"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Formatter.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats lists the formats Formatter accepts.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// IsValidFormat reports whether format is one of ValidFormats.
func IsValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// Formatter writes reports in one output format.
type Formatter struct {
	Format string
	Writer io.Writer
}

// Diagnostics writes problem entries. Text output is one line per entry.
func (f *Formatter) Diagnostics(entries []Entry) error {
	if f.Format != FormatText {
		if entries == nil {
			entries = []Entry{}
		}
		return f.encode(entries)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(f.Writer, entryLine(e)); err != nil {
			return err
		}
	}
	return nil
}

func entryLine(e Entry) string {
	var b strings.Builder
	if e.Document != "" {
		b.WriteString(e.Document)
		b.WriteByte(':')
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d:", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, "%d:", e.Column)
		}
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%s [%s]: %s", e.Severity, e.Code, e.Message)
	return b.String()
}

// Tree writes a dependency tree. Text output indents two spaces per level
// and marks cycles, missing ids and truncation.
func (f *Formatter) Tree(n *dag.TreeNode) error {
	if f.Format != FormatText {
		return f.encode(Tree(n))
	}
	var b strings.Builder
	writeTree(&b, n, 0)
	_, err := io.WriteString(f.Writer, b.String())
	return err
}

func writeTree(b *strings.Builder, n *dag.TreeNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.ID)
	switch {
	case n.Kind == dag.NodeCycle:
		b.WriteString(" (cycle)")
	case n.Kind == dag.NodeMissing:
		b.WriteString(" (missing)")
	case n.Resource != nil:
		fmt.Fprintf(b, " [%s]", n.Resource.Type)
	}
	if n.Truncated {
		b.WriteString(" …")
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		writeTree(b, c, depth+1)
	}
}

// Chains writes the chains found under root, one per line in text form.
func (f *Formatter) Chains(root string, chains [][]string) error {
	if f.Format != FormatText {
		if chains == nil {
			chains = [][]string{}
		}
		return f.encode(ChainsView{Root: root, Chains: chains})
	}
	for _, c := range chains {
		if _, err := fmt.Fprintln(f.Writer, strings.Join(c, " -> ")); err != nil {
			return err
		}
	}
	return nil
}

// Value writes v as JSON or YAML. Text format falls back to JSON.
func (f *Formatter) Value(v any) error {
	return f.encode(v)
}

func (f *Formatter) encode(v any) error {
	if f.Format == FormatYAML {
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
