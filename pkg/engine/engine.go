// Package engine rewrites a Markdown document by running visitors over it.
//
// Each visitor gets one traversal of the latest snapshot. Its edits are
// executed on a buffer once the traversal ends, so the next visitor sees
// the rewritten text. Diagnostics always come back in coordinates of the
// original text, together with a source map from the rewritten text to the
// original.
package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/buffer"
	"github.com/yaklabco/mdsplice/pkg/diag"
	"github.com/yaklabco/mdsplice/pkg/mdast"
	"github.com/yaklabco/mdsplice/pkg/parser/goldmark"
	"github.com/yaklabco/mdsplice/pkg/refresh"
	"github.com/yaklabco/mdsplice/pkg/sourcemap"
	"github.com/yaklabco/mdsplice/pkg/visit"
)

const tracerName = "github.com/yaklabco/mdsplice/pkg/engine"

// Options configures a rewrite.
type Options struct {
	// Parser parses the original text and refreshes the AST after edits.
	// When nil a goldmark parser for Flavor is used.
	Parser refresh.Parser

	// Flavor selects the goldmark flavor when Parser is nil.
	Flavor string

	// Downstream, when set, maps some further generated file to the
	// rewritten text. The result's SourceMap is then its composition with
	// the rewrite, pointing at the original text.
	Downstream *sourcemap.Map

	// SourceMap controls the standalone map built when Downstream is nil.
	SourceMap buffer.SourceMapOptions
}

func (o Options) parser() refresh.Parser {
	if o.Parser != nil {
		return o.Parser
	}
	return goldmark.New(o.Flavor)
}

// PassStats describes one visitor traversal.
type PassStats struct {
	Visitor     string
	Edits       int
	Diagnostics int
	Halted      bool

	// Version is the snapshot version after the pass's edits executed.
	Version int
}

// Result is the outcome of a rewrite.
type Result struct {
	Path     string
	Original []byte
	Code     []byte

	// Diagnostics are in original coordinates, in the order they were
	// reported.
	Diagnostics []diag.Diagnostic

	SourceMap *sourcemap.Map

	// Halted is true when any traversal was halted.
	Halted bool

	Passes   []PassStats
	Snapshot *mdast.FileSnapshot
}

// Changed reports whether the rewritten text differs from the original.
func (r *Result) Changed() bool {
	return string(r.Original) != string(r.Code)
}

// Edits returns the total number of edits executed.
func (r *Result) Edits() int {
	total := 0
	for _, pass := range r.Passes {
		total += pass.Edits
	}
	return total
}

// ApplyVisitor rewrites content with a single visitor.
func ApplyVisitor(ctx context.Context, path string, content []byte, v visit.Visitor, opts Options) (*Result, error) {
	return Rewrite(ctx, path, content, []visit.Visitor{v}, opts)
}

// Rewrite parses content and runs visitors over it in order.
//
// A halted traversal ends that visitor's pass only; later visitors still
// run. A visitor error aborts the rewrite and is returned wrapped with the
// visitor's name.
func Rewrite(
	ctx context.Context,
	path string,
	content []byte,
	visitors []visit.Visitor,
	opts Options,
) (result *Result, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "engine.Rewrite", trace.WithAttributes(
		attribute.String("mdsplice.path", path),
		attribute.Int("mdsplice.visitors", len(visitors)),
		attribute.Int("mdsplice.bytes", len(content)),
	))
	defer func() {
		endSpan(span, err)
	}()

	parser := opts.parser()
	snap, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayPath(path), err)
	}

	buf := buffer.New(snap, parser)
	result = &Result{
		Path:     path,
		Original: snap.Content,
	}

	for i, v := range visitors {
		name := visit.NameOf(v, fmt.Sprintf("visitor-%d", i+1))

		stats, diags, err := runPass(ctx, buf, i, name, v)
		if err != nil {
			return nil, err
		}
		result.Passes = append(result.Passes, stats)
		result.Diagnostics = append(result.Diagnostics, diags...)
		result.Halted = result.Halted || stats.Halted
	}

	result.Snapshot = buf.AST()
	result.Code = buf.Code()

	if opts.Downstream != nil {
		result.SourceMap, err = buf.TranslateMap(opts.Downstream)
	} else {
		result.SourceMap, err = buf.SourceMap(opts.SourceMap)
	}
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("mdsplice.edits", result.Edits()),
		attribute.Int("mdsplice.diagnostics", len(result.Diagnostics)),
		attribute.Bool("mdsplice.halted", result.Halted),
	)
	return result, nil
}

func runPass(
	ctx context.Context,
	buf *buffer.Buffer,
	index int,
	name string,
	v visit.Visitor,
) (stats PassStats, diags []diag.Diagnostic, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "engine.Pass", trace.WithAttributes(
		attribute.String("mdsplice.visitor", name),
		attribute.Int("mdsplice.pass", index),
	))
	defer func() {
		endSpan(span, err)
	}()

	vctx := visit.NewContext(buf.AST(), name)
	if err := visit.Traverse(buf.AST().Root, v, vctx); err != nil {
		return PassStats{}, nil, fmt.Errorf("visitor %s: %w", name, err)
	}

	// Diagnostics refer to the traversed snapshot, which Execute replaces.
	diags, err = translate(buf, vctx.Diagnostics())
	if err != nil {
		return PassStats{}, nil, fmt.Errorf("visitor %s: %w", name, err)
	}

	edits := vctx.Edits()
	snap, err := buf.Execute(ctx, edits)
	if err != nil {
		return PassStats{}, nil, fmt.Errorf("visitor %s: %w", name, err)
	}

	stats = PassStats{
		Visitor:     name,
		Edits:       len(edits),
		Diagnostics: len(diags),
		Halted:      vctx.Halted(),
		Version:     snap.Version,
	}

	logging.FromContext(ctx).Debug("pass finished",
		logging.FieldPath, displayPath(buf.Original().Path),
		logging.FieldVisitor, name,
		logging.FieldPass, index,
		logging.FieldEdits, stats.Edits,
		logging.FieldDiagnosticsTotal, stats.Diagnostics,
		logging.FieldHalted, stats.Halted,
		logging.FieldVersion, stats.Version,
	)
	span.SetAttributes(
		attribute.Int("mdsplice.edits", stats.Edits),
		attribute.Bool("mdsplice.halted", stats.Halted),
	)
	return stats, diags, nil
}

// translate maps diagnostics to original offsets and fills in their
// 1-based line and column.
func translate(buf *buffer.Buffer, diags []diag.Diagnostic) ([]diag.Diagnostic, error) {
	lines := buf.Original().Lines
	out := make([]diag.Diagnostic, 0, len(diags))

	for _, d := range diags {
		translated, err := buf.TranslateDiagnostic(d)
		if err != nil {
			return nil, err
		}
		pos, err := lines.Locate(translated.Start)
		if err != nil {
			return nil, fmt.Errorf("locate diagnostic: %w", err)
		}
		translated.Location = &diag.Location{Line: pos.Line, Column: pos.Column + 1}
		out = append(out, translated)
	}
	return out, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func displayPath(path string) string {
	if path == "" {
		return buffer.DefaultSourceName
	}
	return path
}
