// Package loader turns component files into script sources the language
// adapters can parse. Script files pass through; Vue single-file components
// have their <script> block cut out.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/webfansplz/vuedoc-parser/internal/lang"
)

// Vue is the language name of single-file components in loader specs.
const Vue = "vue"

// ErrUnsupportedLanguage is returned for files or script blocks whose
// language has no parser.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Script is the parseable code of a component file.
type Script struct {
	// Language is the lang registry name, or "" when the file holds no
	// script.
	Language string
	Source   []byte

	// LineOffset is the number of lines preceding Source in the file.
	LineOffset int
}

// Loader extracts the script of one kind of file.
type Loader interface {
	Load(source []byte) (*Script, error)
}

// Spec maps file extensions onto a built-in language ("typescript",
// "tsx", "javascript" or "vue").
type Spec struct {
	Extensions []string `yaml:"extensions" validate:"required,min=1,dive,startswith=."`
	Language   string   `yaml:"language" validate:"required,oneof=typescript tsx javascript vue"`
}

// Registry maps file extensions to loaders.
type Registry struct {
	loaders map[string]Loader
}

// New returns a registry with a loader for every extension of the lang
// registry, ".vue", and the extensions named by custom. Custom specs
// override built-in mappings.
func New(custom ...Spec) (*Registry, error) {
	r := &Registry{loaders: make(map[string]Loader)}
	for _, ext := range lang.Extensions() {
		r.loaders[ext] = scriptLoader{language: lang.ForExtension(ext)}
	}
	r.loaders[".vue"] = vueLoader{}

	for _, spec := range custom {
		ld, err := forLanguage(spec.Language)
		if err != nil {
			return nil, err
		}
		for _, ext := range spec.Extensions {
			r.loaders[strings.ToLower(ext)] = ld
		}
	}
	return r, nil
}

func forLanguage(name string) (Loader, error) {
	if name == Vue {
		return vueLoader{}, nil
	}
	if _, ok := lang.Languages[name]; !ok {
		return nil, errtrace.Wrap(fmt.Errorf("loader for %q: %w", name, ErrUnsupportedLanguage))
	}
	return scriptLoader{language: name}, nil
}

// Extensions returns the sorted extensions the registry can load.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Supports reports whether path has a loadable extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.loaders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load returns the script of the file at path with the given content.
func (r *Registry) Load(path string, source []byte) (*Script, error) {
	ext := strings.ToLower(filepath.Ext(path))
	ld, ok := r.loaders[ext]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("extension %q: %w", ext, ErrUnsupportedLanguage))
	}
	return errtrace.Wrap2(ld.Load(source))
}

type scriptLoader struct {
	language string
}

func (l scriptLoader) Load(source []byte) (*Script, error) {
	return &Script{Language: l.language, Source: source}, nil
}

// Decode converts source from the named encoding to UTF-8. Names are
// resolved as in the WHATWG encoding standard.
func Decode(source []byte, encoding string) ([]byte, error) {
	if encoding == "" || strings.EqualFold(encoding, "utf-8") || strings.EqualFold(encoding, "utf8") {
		return source, nil
	}
	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("encoding %q: %w", encoding, err))
	}
	out, err := enc.NewDecoder().Bytes(source)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("decoding %s: %w", encoding, err))
	}
	return out, nil
}
