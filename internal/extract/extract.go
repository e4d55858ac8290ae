// Package extract runs the documentation pipeline for one file: load the
// script, parse it, walk every class component and collect the filtered
// entries.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"braces.dev/errtrace"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/webfansplz/vuedoc-parser/internal/config"
	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/lang"
	"github.com/webfansplz/vuedoc-parser/internal/loader"
	"github.com/webfansplz/vuedoc-parser/internal/parse"
	"github.com/webfansplz/vuedoc-parser/internal/scope"
	"github.com/webfansplz/vuedoc-parser/internal/syntax"
)

// Extractor documents component files. It is safe for concurrent use;
// tree-sitter parsers are pooled per language.
type Extractor struct {
	opts     config.Options
	features entry.FeatureSet
	loaders  *loader.Registry
	log      *slog.Logger
	parsers  map[string]*sync.Pool
}

// New returns an extractor for validated options. A nil logger discards
// output.
func New(opts config.Options, log *slog.Logger) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	loaders, err := loader.New(opts.Loaders...)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	parsers := make(map[string]*sync.Pool, len(lang.Languages))
	for name, l := range lang.Languages {
		parsers[name] = &sync.Pool{New: func() any { return l.NewParser() }}
	}

	return &Extractor{
		opts:     opts,
		features: entry.NewFeatureSet(opts.Features),
		loaders:  loaders,
		log:      log,
		parsers:  parsers,
	}, nil
}

// Supports reports whether path has an extension the extractor can load.
func (x *Extractor) Supports(path string) bool {
	return x.loaders.Supports(path)
}

// Extensions returns the loadable file extensions.
func (x *Extractor) Extensions() []string {
	return x.loaders.Extensions()
}

// ExtractFile reads the file at path and documents its components. name
// is the path reported in results and errors.
func (x *Extractor) ExtractFile(ctx context.Context, path, name string) ([]Component, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errtrace.Wrap(&FileError{Path: name, Err: err})
	}
	if x.opts.MaxFileSize > 0 && info.Size() > x.opts.MaxFileSize {
		return nil, errtrace.Wrap(&FileError{Path: name, Err: fmt.Errorf("%d bytes: %w", info.Size(), ErrFileTooLarge)})
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(&FileError{Path: name, Err: err})
	}
	return errtrace.Wrap2(x.Extract(ctx, name, source))
}

// Extract documents every class component of a file named path with the
// given content. Files without components yield no result and no error.
func (x *Extractor) Extract(ctx context.Context, path string, source []byte) (components []Component, err error) {
	ctx, span := startExtractSpan(ctx, path, len(source))
	defer span.End()

	start := time.Now()
	var language string
	defer func() {
		setExtractSpanResult(span, language, len(components), err)
		recordExtractMetrics(ctx, time.Since(start), language, err == nil)
	}()

	if err := ctx.Err(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if x.opts.MaxFileSize > 0 && int64(len(source)) > x.opts.MaxFileSize {
		return nil, errtrace.Wrap(&FileError{Path: path, Err: fmt.Errorf("%d bytes: %w", len(source), ErrFileTooLarge)})
	}

	source, err = loader.Decode(source, x.opts.Encoding)
	if err != nil {
		return nil, errtrace.Wrap(&FileError{Path: path, Err: fmt.Errorf("%w: %w", ErrInvalidContent, err)})
	}
	if !utf8.Valid(source) {
		return nil, errtrace.Wrap(&FileError{Path: path, Err: ErrInvalidContent})
	}

	script, err := x.loaders.Load(path, source)
	if err != nil {
		return nil, errtrace.Wrap(&FileError{Path: path, Err: err})
	}
	language = script.Language
	if language == "" {
		x.log.Debug("no script block", "file", path)
		return nil, nil
	}

	file, err := x.parse(ctx, script)
	if err != nil {
		return nil, errtrace.Wrap(&FileError{Path: path, Err: fmt.Errorf("%w: %w", ErrParseFailed, err)})
	}
	file.Path = path
	if file.HasErrors {
		x.log.Warn("syntax errors, documenting partial tree", "file", path, "language", language)
	}

	return x.components(ctx, file), nil
}

func (x *Extractor) parse(ctx context.Context, script *loader.Script) (*syntax.File, error) {
	l, ok := lang.Languages[script.Language]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("%q: %w", script.Language, ErrUnsupportedLanguage))
	}
	pool := x.parsers[script.Language]
	parser := pool.Get().(*sitter.Parser)
	defer pool.Put(parser)

	return errtrace.Wrap2(l.Parse(ctx, parser, script.Source, script.LineOffset))
}

// components walks the file statements in order. Top level declarations
// feed the module scope the components resolve against.
func (x *Extractor) components(ctx context.Context, file *syntax.File) []Component {
	module := scope.New()
	log := x.log.With("file", file.Path)

	var out []Component
	for _, stmt := range file.Statements {
		switch n := stmt.(type) {
		case *syntax.VariableDeclaration:
			parse.Declare(module, n, false)
		case *syntax.ClassDeclaration:
			if !parse.IsComponent(n) {
				log.Debug("skipping class", "name", n.Name, "line", n.Pos().Line)
				continue
			}
			out = append(out, x.component(ctx, module, n, file.Path, log))
		}
	}
	return out
}

func (x *Extractor) component(ctx context.Context, module *scope.Scope, cls *syntax.ClassDeclaration, path string, log *slog.Logger) Component {
	var entries []entry.Entry
	sink := parse.Filter(parse.Collect(&entries), x.features, x.opts.IgnoredVisibilities)
	counted := func(e entry.Entry) {
		recordEntry(ctx, e.Kind())
		sink(e)
	}

	info := parse.NewComponentParser(module, counted, parse.Options{
		VueVersion: x.opts.VueVersion,
		Logger:     log,
	}).Parse(cls)

	c := Component{File: path, Line: info.Position.Line, Entries: entries}
	if x.features.Has(entry.FeatureName) {
		c.Name = info.Name
	}
	if x.features.Has(entry.FeatureDescription) {
		c.Description = info.Description
	}
	if x.features.Has(entry.FeatureKeywords) {
		c.Keywords = info.Keywords
	}
	log.Debug("component", "name", info.Name, "entries", len(entries))
	return c
}
