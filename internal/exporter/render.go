package exporter

import (
	"sort"
	"strings"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/specialistvlad/plangridgo/internal/sourceindex"
)

// resourceComments holds the comments claimed by one resource.
type resourceComments struct {
	idx     *sourceindex.Index
	header  []cst.CommentToken
	attrs   map[int][]cst.CommentToken
	body    []cst.CommentToken
	closing []cst.CommentToken
}

// bodyItem is an attribute or a standalone comment line inside a body,
// ordered by key.
type bodyItem struct {
	key      float64
	text     string
	hasRows  bool
	startRow int
}

// renderLocated claims the comments inside and right after r and renders it.
func (e *exporter) renderLocated(r model.Resource) string {
	rc := &resourceComments{idx: e.idx, attrs: make(map[int][]cst.CommentToken)}
	origin := *r.Origin

	for _, c := range e.idx.Comments() {
		key := sourceindex.KeyOf(c)
		if e.consumed[key] || !origin.Contains(c.StartByte, c.EndByte) {
			continue
		}
		e.consumed[key] = true
		rc.classify(r, c)
	}
	for _, c := range e.idx.Trailing(origin.EndByte) {
		key := sourceindex.KeyOf(c.Token)
		if e.consumed[key] {
			continue
		}
		e.consumed[key] = true
		rc.closing = append(rc.closing, c.Token)
	}
	return renderResource(r, rc)
}

func (rc *resourceComments) classify(r model.Resource, c cst.CommentToken) {
	if c.StartRow == r.Origin.StartRow {
		rc.header = append(rc.header, c)
		return
	}
	for i, a := range r.Attributes {
		if a.Origin != nil && a.Origin.EndRow == c.StartRow && c.StartByte >= a.Origin.EndByte {
			rc.attrs[i] = append(rc.attrs[i], c)
			return
		}
	}
	rc.body = append(rc.body, c)
}

func header(r model.Resource) string {
	h := string(r.Type) + " " + formatID(r.ID)
	if r.Complete {
		h += " " + model.CompleteKeyword
	}
	return h
}

func suffix(comments []cst.CommentToken) string {
	if len(comments) == 0 {
		return ""
	}
	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}
	return indent + strings.Join(texts, " ")
}

// renderResource prints `type id[ complete] { ... }`. rc may be nil.
func renderResource(r model.Resource, rc *resourceComments) string {
	if rc == nil {
		rc = &resourceComments{}
	}

	if len(r.Attributes) == 0 && len(rc.body) == 0 && len(rc.header) == 0 {
		return header(r) + " {}" + suffix(rc.closing)
	}

	items := bodyItems(r, rc)

	var b strings.Builder
	b.WriteString(header(r))
	b.WriteString(" {")
	b.WriteString(suffix(rc.header))
	for i, it := range items {
		b.WriteString("\n")
		if i > 0 && it.hasRows && rc.idx != nil && rc.idx.BlankLinesBefore(it.startRow) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indent)
		b.WriteString(it.text)
	}
	b.WriteString("\n}")
	b.WriteString(suffix(rc.closing))
	return b.String()
}

func bodyItems(r model.Resource, rc *resourceComments) []bodyItem {
	var items []bodyItem

	lastKey := -1.0
	for i, a := range r.Attributes {
		it := bodyItem{text: a.Key + " = " + formatAttribute(a) + suffix(rc.attrs[i])}
		if a.Origin != nil {
			it.key = float64(a.Origin.StartByte)
			it.hasRows = true
			it.startRow = a.Origin.StartRow
		} else {
			// Keep attributes without a source position right after the
			// preceding attribute.
			it.key = lastKey + 1e-6
		}
		lastKey = it.key
		items = append(items, it)
	}
	for _, c := range rc.body {
		items = append(items, bodyItem{
			key:      float64(c.StartByte),
			text:     c.Text,
			hasRows:  true,
			startRow: c.StartRow,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].key < items[j].key })
	return items
}
