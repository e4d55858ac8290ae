// Package config defines the extraction options and loads them from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/loader"
)

// DefaultEncoding is the encoding of component files.
const DefaultEncoding = "utf-8"

// DefaultMaxFileSize is the size above which files are skipped.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// DefaultIgnoredVisibilities are dropped from the output unless configured
// otherwise.
var DefaultIgnoredVisibilities = []entry.Visibility{entry.Protected, entry.Private}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := htmlindex.Get(fl.Field().String())
		return err == nil
	})
	return v
}

// Options control one extraction run.
type Options struct {
	// Features lists the documentation sections to extract. Empty means
	// all of them.
	Features []entry.Feature `yaml:"features" validate:"dive,oneof=name description keywords slots props data computed events methods model"`

	// IgnoredVisibilities drops entries with these visibilities.
	IgnoredVisibilities []entry.Visibility `yaml:"ignoredVisibilities" validate:"dive,oneof=public protected private"`

	// Loaders map extra file extensions onto built-in languages.
	Loaders []loader.Spec `yaml:"loaders" validate:"dive"`

	// VueVersion selects the v-model naming regime.
	VueVersion int `yaml:"vueVersion" validate:"oneof=2 3"`

	// Encoding is the WHATWG name of the file encoding.
	Encoding string `yaml:"encoding" validate:"required,encoding"`

	// MaxFileSize skips files larger than this many bytes. Zero disables
	// the limit.
	MaxFileSize int64 `yaml:"maxFileSize" validate:"gte=0"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		Features:            append([]entry.Feature(nil), entry.Features...),
		IgnoredVisibilities: append([]entry.Visibility(nil), DefaultIgnoredVisibilities...),
		VueVersion:          3,
		Encoding:            DefaultEncoding,
		MaxFileSize:         DefaultMaxFileSize,
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errtrace.Wrap(fmt.Errorf("invalid option %s: %q fails %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
		}
		return errtrace.Wrap(err)
	}
	return nil
}

// Decode reads YAML options from r on top of the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, errtrace.Wrap(fmt.Errorf("parse config: %w", err))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Load reads options from the YAML file at path. A missing file yields the
// defaults.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Options{}, errtrace.Wrap(err)
	}
	opts, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Options{}, errtrace.Wrap(fmt.Errorf("%s: %w", path, err))
	}
	return opts, nil
}

// Marshal renders opts as YAML.
func Marshal(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(opts); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if err := enc.Close(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return buf.Bytes(), nil
}
