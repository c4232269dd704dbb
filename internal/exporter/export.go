package exporter

import (
	"sort"
	"strings"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/specialistvlad/plangridgo/internal/sourceindex"
)

const indent = "  "

// segment is one top-level piece of output: a resource or a comment block.
type segment struct {
	text     string
	resource bool
	// hasRows is false for resources without an origin in this document.
	hasRows          bool
	startRow, endRow int
}

// Export renders resources as source text. With a nil index it prints the
// resources in the given order without comments.
func Export(resources []model.Resource, idx *sourceindex.Index) string {
	if idx == nil {
		return exportPlain(resources)
	}
	e := &exporter{
		idx:      idx,
		consumed: make(map[sourceindex.SpanKey]bool),
	}
	return e.export(resources)
}

func exportPlain(resources []model.Resource) string {
	var segs []segment
	for _, r := range resources {
		segs = append(segs, segment{text: renderResource(r, nil), resource: true})
	}
	return join(segs)
}

type exporter struct {
	idx      *sourceindex.Index
	consumed map[sourceindex.SpanKey]bool
	spans    []cst.Origin
	segs     []segment
}

func (e *exporter) located(r model.Resource) bool {
	if r.Origin == nil {
		return false
	}
	return r.Origin.Document == "" || e.idx.Document() == "" || r.Origin.Document == e.idx.Document()
}

func (e *exporter) export(resources []model.Resource) string {
	ordered := make([]model.Resource, len(resources))
	copy(ordered, resources)
	sort.SliceStable(ordered, func(i, j int) bool {
		li, lj := e.located(ordered[i]), e.located(ordered[j])
		if li != lj {
			return li
		}
		if !li {
			return false
		}
		return ordered[i].Origin.StartByte < ordered[j].Origin.StartByte
	})

	for _, r := range ordered {
		if e.located(r) {
			e.spans = append(e.spans, *r.Origin)
		}
	}

	lastEnd := 0
	for _, r := range ordered {
		if !e.located(r) {
			e.segs = append(e.segs, segment{text: renderResource(r, nil), resource: true})
			continue
		}
		e.flushBefore(r.Origin.StartByte)
		e.segs = append(e.segs, segment{
			text:     e.renderLocated(r),
			resource: true,
			hasRows:  true,
			startRow: r.Origin.StartRow,
			endRow:   r.Origin.EndRow,
		})
		if r.Origin.EndByte > lastEnd {
			lastEnd = r.Origin.EndByte
		}
	}

	var rest []cst.CommentToken
	for _, c := range e.idx.Comments() {
		if !e.consumed[sourceindex.KeyOf(c)] && c.StartByte < lastEnd {
			rest = append(rest, c)
		}
	}
	e.emitBlocks(rest)
	e.flushEOF(lastEnd)

	return join(e.segs)
}

func (e *exporter) enclosed(c cst.CommentToken) bool {
	for _, s := range e.spans {
		if s.Contains(c.StartByte, c.EndByte) {
			return true
		}
	}
	return false
}

// flushBefore emits the free-standing comments that end before start: the
// detached blocks as they were written, then the remaining leading comments
// split at blank lines.
func (e *exporter) flushBefore(start int) {
	free := func(c cst.CommentToken) bool {
		return !e.consumed[sourceindex.KeyOf(c)] && !e.enclosed(c)
	}

	var groups [][]cst.CommentToken
	for _, b := range e.idx.DetachedBlocks() {
		var g []cst.CommentToken
		for _, c := range b.Comments {
			if c.EndByte <= start && free(c) {
				g = append(g, c)
			}
		}
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}

	var run []cst.CommentToken
	for _, c := range e.idx.WithoutDetached(e.idx.Leading(start, 0)) {
		if !free(c.Token) {
			continue
		}
		if len(run) > 0 && c.Token.StartRow-run[len(run)-1].EndRow >= 2 {
			groups = append(groups, run)
			run = nil
		}
		run = append(run, c.Token)
	}
	if len(run) > 0 {
		groups = append(groups, run)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i][0].StartByte < groups[j][0].StartByte })
	for _, g := range groups {
		e.emitGroup(g)
	}
}

// flushEOF emits the comments after the last resource. A detached comment
// opens a new block; leading and trailing ones join the current block.
func (e *exporter) flushEOF(lastEnd int) {
	var block []cst.CommentToken
	for _, c := range e.idx.EOFComments(lastEnd) {
		if c.Classification == sourceindex.Detached {
			e.emitGroup(block)
			block = nil
		}
		block = append(block, c.Token)
	}
	e.emitGroup(block)
}

// emitGroup appends the unconsumed comments of one block as a segment.
func (e *exporter) emitGroup(comments []cst.CommentToken) {
	var block []cst.CommentToken
	for _, c := range comments {
		key := sourceindex.KeyOf(c)
		if e.consumed[key] {
			continue
		}
		e.consumed[key] = true
		block = append(block, c)
	}
	if len(block) == 0 {
		return
	}
	e.segs = append(e.segs, segment{
		text:     commentLines(block, ""),
		hasRows:  true,
		startRow: block[0].StartRow,
		endRow:   block[len(block)-1].EndRow,
	})
}

// emitBlocks sorts comments and emits one segment per run of rows without
// a blank line between them.
func (e *exporter) emitBlocks(comments []cst.CommentToken) {
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].StartByte < comments[j].StartByte })

	var block []cst.CommentToken
	for _, c := range comments {
		if len(block) > 0 && c.StartRow-block[len(block)-1].EndRow >= 2 {
			e.emitGroup(block)
			block = nil
		}
		block = append(block, c)
	}
	e.emitGroup(block)
}

// commentLines prints comments one row per line, joining comments that
// shared a row.
func commentLines(comments []cst.CommentToken, prefix string) string {
	var b strings.Builder
	for i, c := range comments {
		switch {
		case i == 0:
			b.WriteString(prefix)
		case c.StartRow == comments[i-1].EndRow:
			b.WriteString(" ")
		default:
			b.WriteString("\n")
			b.WriteString(prefix)
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

func join(segs []segment) string {
	if len(segs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			prev := segs[i-1]
			b.WriteString("\n")
			if (prev.resource && s.resource) || (prev.hasRows && s.hasRows && s.startRow-prev.endRow >= 2) {
				b.WriteString("\n")
			}
		}
		b.WriteString(s.text)
	}
	b.WriteString("\n")
	return b.String()
}
