package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/ctxlog"
	"github.com/specialistvlad/plangridgo/internal/decoder"
	"github.com/specialistvlad/plangridgo/internal/fsutil"
	"github.com/specialistvlad/plangridgo/internal/irctx"
	"github.com/specialistvlad/plangridgo/internal/model"
	"github.com/specialistvlad/plangridgo/internal/sourceindex"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Document is the per-file outcome of a load.
type Document struct {
	Name   string
	Parse  cst.ParseResult
	Index  *sourceindex.Index
	Decode decoder.Result
	// Fallback is set when the document failed and the project uses the
	// last good version from the cache instead.
	Fallback bool

	effective *cst.DocumentNode
}

// Valid reports whether the document parsed and decoded without errors.
func (d *Document) Valid() bool {
	return d.Parse.Success && d.Decode.Success
}

// Project is a set of documents analysed together.
type Project struct {
	Documents []*Document
	Context   *irctx.Context
}

// Document returns the document with the given name.
func (p *Project) Document(name string) (*Document, bool) {
	for _, d := range p.Documents {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// ParseErrors returns the syntax errors of every document in load order.
func (p *Project) ParseErrors() []cst.ParseError {
	var out []cst.ParseError
	for _, d := range p.Documents {
		out = append(out, d.Parse.Errors...)
	}
	return out
}

// Diagnostics returns the analysis diagnostics of the project. Documents
// that fell back to a cached version contribute their own decode
// diagnostics, which the combined analysis does not see.
func (p *Project) Diagnostics() []model.Diagnostic {
	out := p.Context.Diagnostics()
	for _, d := range p.Documents {
		if d.Fallback {
			out = append(out, d.Decode.Diagnostics...)
		}
	}
	return out
}

// HasErrors reports whether any document has syntax errors or any
// diagnostic is an error.
func (p *Project) HasErrors() bool {
	return len(p.ParseErrors()) > 0 || model.HasErrors(p.Diagnostics())
}

// Load expands paths into documents and loads them. Directories are walked
// for the configured file extensions.
func (a *App) Load(ctx context.Context, paths ...string) (*Project, error) {
	files, err := fsutil.ExpandPaths(paths, a.settings.Files.Extensions...)
	if err != nil {
		return nil, fmt.Errorf("resolving paths: %w", err)
	}

	srcs := make([]cst.Source, 0, len(files))
	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		srcs = append(srcs, cst.Source{Name: path, Text: text})
	}
	return a.LoadSources(ctx, srcs...), nil
}

// LoadSources parses every source, decodes them as one resource set and
// builds the analysis context over the result.
func (a *App) LoadSources(ctx context.Context, srcs ...cst.Source) *Project {
	ctx = a.WithLogger(ctx)
	ctx, span := tracer.Start(ctx, "plangrid.load", trace.WithAttributes(
		attribute.Int("plangrid.documents", len(srcs)),
	))
	defer span.End()
	logger := ctxlog.FromContext(ctx)

	project := &Project{Documents: make([]*Document, 0, len(srcs))}
	nodes := make([]*cst.DocumentNode, 0, len(srcs))
	for _, src := range srcs {
		doc := a.loadDocument(ctx, src)
		project.Documents = append(project.Documents, doc)
		nodes = append(nodes, doc.effective)
	}

	_, decodeSpan := tracer.Start(ctx, "plangrid.decode")
	result := decoder.DecodeAll(nodes...)
	decodeSpan.SetAttributes(
		attribute.Int("plangrid.resources", len(result.Resources)),
		attribute.Int("plangrid.diagnostics", len(result.Diagnostics)),
	)
	if !result.Success {
		decodeSpan.SetStatus(codes.Error, "decode produced errors")
	}
	decodeSpan.End()

	project.Context = irctx.New(result, irctx.Options{MaxDepth: a.settings.Chains.MaxDepth})
	logger.Debug("Project loaded.",
		"documents", len(project.Documents),
		"resources", len(result.Resources),
		"diagnostics", len(result.Diagnostics),
	)
	return project
}

func (a *App) loadDocument(ctx context.Context, src cst.Source) *Document {
	logger := ctxlog.FromContext(ctx)

	_, span := tracer.Start(ctx, "plangrid.parse", trace.WithAttributes(
		attribute.String("plangrid.document", src.Name),
	))
	res := a.parser.Parse(src)
	if !res.Success {
		span.SetStatus(codes.Error, fmt.Sprintf("%d syntax errors", len(res.Errors)))
	}
	span.End()

	doc := &Document{
		Name:   src.Name,
		Parse:  res,
		Index:  sourceindex.FromParse(res),
		Decode: decoder.Decode(res.Document),
	}
	doc.effective = res.Document

	if doc.Valid() {
		a.cache.Add(src.Name, res.Document)
		return doc
	}

	cached, ok := a.cache.Get(src.Name)
	if !ok {
		logger.Debug("Document has errors and no cached version.", "document", src.Name)
		return doc
	}
	doc.Fallback = true
	doc.effective = cached
	logger.Warn("Document has errors, using last good version.",
		"document", src.Name,
		"syntax_errors", len(res.Errors),
	)
	return doc
}
