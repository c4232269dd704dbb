package sourceindex

import (
	"bytes"
	"slices"
	"sort"

	"github.com/specialistvlad/plangridgo/internal/cst"
)

// Classification is how a comment relates to the node it was queried for.
type Classification string

const (
	Leading  Classification = "leading"
	Trailing Classification = "trailing"
	Detached Classification = "detached"
)

// ClassifiedComment is a comment token with its classification.
// BlankLinesBefore is set on detached comments that open a block.
type ClassifiedComment struct {
	Token            cst.CommentToken
	Classification   Classification
	BlankLinesBefore int
}

// DetachedBlock is a run of own-line comments opened by a blank line.
type DetachedBlock struct {
	Comments         []cst.CommentToken
	BlankLinesBefore int
}

// SpanKey identifies a comment by its byte span.
type SpanKey struct {
	Document   string
	Start, End int
}

// KeyOf returns the span key of a token.
func KeyOf(tok cst.CommentToken) SpanKey {
	return SpanKey{Document: tok.Document, Start: tok.StartByte, End: tok.EndByte}
}

// Index answers position and comment queries for one document.
type Index struct {
	document   string
	source     []byte
	comments   []cst.CommentToken
	lineStarts []int
	detached   []DetachedBlock
}

// New builds an Index. Comments are sorted by start byte.
func New(document string, source []byte, comments []cst.CommentToken) *Index {
	ix := &Index{
		document:   document,
		source:     source,
		comments:   slices.Clone(comments),
		lineStarts: []int{0},
	}
	sort.SliceStable(ix.comments, func(i, j int) bool {
		return ix.comments[i].StartByte < ix.comments[j].StartByte
	})
	for i, b := range source {
		if b == '\n' {
			ix.lineStarts = append(ix.lineStarts, i+1)
		}
	}
	ix.detached = ix.buildDetached()
	return ix
}

// FromParse builds an Index from a parse result.
func FromParse(res cst.ParseResult) *Index {
	name := ""
	if res.Document != nil {
		name = res.Document.Name
	}
	return New(name, res.Source, res.Comments)
}

// Document returns the document name.
func (ix *Index) Document() string { return ix.document }

// Source returns the indexed text.
func (ix *Index) Source() []byte { return ix.source }

// Comments returns all comment tokens in byte order.
func (ix *Index) Comments() []cst.CommentToken { return slices.Clone(ix.comments) }

// LineCount returns the number of rows. A trailing newline opens a final,
// empty row.
func (ix *Index) LineCount() int { return len(ix.lineStarts) }

// LineStart returns the byte offset at which row begins. Rows past the end
// map to len(source).
func (ix *Index) LineStart(row int) int {
	if row < 0 {
		return 0
	}
	if row >= len(ix.lineStarts) {
		return len(ix.source)
	}
	return ix.lineStarts[row]
}

// RowOf returns the 0-based row containing byte offset b. A newline belongs
// to the row it terminates.
func (ix *Index) RowOf(b int) int {
	return sort.Search(len(ix.lineStarts), func(i int) bool { return ix.lineStarts[i] > b }) - 1
}

// Line returns the text of row without its line terminator.
func (ix *Index) Line(row int) []byte {
	if row < 0 || row >= len(ix.lineStarts) {
		return nil
	}
	end := ix.LineStart(row + 1)
	return bytes.TrimRight(ix.source[ix.lineStarts[row]:end], "\r\n")
}

// IsBlankLine reports whether row exists and holds only whitespace.
func (ix *Index) IsBlankLine(row int) bool {
	if row < 0 || row >= len(ix.lineStarts) {
		return false
	}
	return len(bytes.TrimSpace(ix.Line(row))) == 0
}

// BlankLinesBefore counts the blank rows directly above row.
func (ix *Index) BlankLinesBefore(row int) int {
	n := 0
	for r := row - 1; r >= 0 && ix.IsBlankLine(r); r-- {
		n++
	}
	return n
}

// OwnLine reports whether only whitespace precedes the token on its row.
func (ix *Index) OwnLine(tok cst.CommentToken) bool {
	start := ix.LineStart(tok.StartRow)
	if tok.StartByte < start || tok.StartByte > len(ix.source) {
		return false
	}
	return len(bytes.TrimSpace(ix.source[start:tok.StartByte])) == 0
}

// Leading returns the comments lying entirely in [from, nodeStart). It does
// not exclude blank-line separated comments; see WithoutDetached.
func (ix *Index) Leading(nodeStart, from int) []ClassifiedComment {
	var out []ClassifiedComment
	for _, c := range ix.comments {
		if c.StartByte >= from && c.EndByte <= nodeStart {
			out = append(out, ClassifiedComment{Token: c, Classification: Leading})
		}
	}
	return out
}

// Trailing returns the comments that start at or after nodeEnd on the row
// containing nodeEnd.
func (ix *Index) Trailing(nodeEnd int) []ClassifiedComment {
	row := ix.RowOf(nodeEnd)
	var out []ClassifiedComment
	for _, c := range ix.comments {
		if c.StartByte >= nodeEnd && c.StartRow == row {
			out = append(out, ClassifiedComment{Token: c, Classification: Trailing})
		}
	}
	return out
}

// DetachedBlocks returns the blank-line separated comment blocks in order.
func (ix *Index) DetachedBlocks() []DetachedBlock {
	out := make([]DetachedBlock, len(ix.detached))
	for i, b := range ix.detached {
		out[i] = DetachedBlock{Comments: slices.Clone(b.Comments), BlankLinesBefore: b.BlankLinesBefore}
	}
	return out
}

// WithoutDetached drops every comment that belongs to a detached block.
func (ix *Index) WithoutDetached(cs []ClassifiedComment) []ClassifiedComment {
	claimed := make(map[SpanKey]struct{})
	for _, b := range ix.detached {
		for _, c := range b.Comments {
			claimed[KeyOf(c)] = struct{}{}
		}
	}
	var out []ClassifiedComment
	for _, c := range cs {
		if _, ok := claimed[KeyOf(c.Token)]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// EOFComments returns the comments starting at or after lastEnd, the end of
// the last semantic node. A comment on lastEnd's row is trailing, one after
// a blank line is detached, anything else is leading.
func (ix *Index) EOFComments(lastEnd int) []ClassifiedComment {
	lastRow := ix.RowOf(lastEnd)
	var out []ClassifiedComment
	for _, c := range ix.comments {
		if c.StartByte < lastEnd {
			continue
		}
		cc := ClassifiedComment{Token: c, Classification: Leading}
		switch blank := ix.BlankLinesBefore(c.StartRow); {
		case c.StartRow == lastRow:
			cc.Classification = Trailing
		case blank > 0 && ix.OwnLine(c):
			cc.Classification = Detached
			cc.BlankLinesBefore = blank
		}
		out = append(out, cc)
	}
	return out
}

func (ix *Index) buildDetached() []DetachedBlock {
	var (
		out     []DetachedBlock
		current *DetachedBlock
		lastRow int
	)
	closeBlock := func() {
		if current != nil {
			out = append(out, *current)
			current = nil
		}
	}
	for _, c := range ix.comments {
		if !ix.OwnLine(c) {
			closeBlock()
			continue
		}
		if blank := ix.BlankLinesBefore(c.StartRow); blank > 0 {
			closeBlock()
			current = &DetachedBlock{BlankLinesBefore: blank}
		} else if current == nil || c.StartRow != lastRow+1 {
			closeBlock()
			continue
		}
		current.Comments = append(current.Comments, c)
		lastRow = c.EndRow
	}
	closeBlock()
	return out
}
