// vuedoc extracts documentation from class-style Vue components.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"braces.dev/errtrace"
	"github.com/peterbourgon/ff/v3"
	"golang.org/x/sync/errgroup"

	"github.com/webfansplz/vuedoc-parser/internal/config"
	"github.com/webfansplz/vuedoc-parser/internal/discover"
	"github.com/webfansplz/vuedoc-parser/internal/entry"
	"github.com/webfansplz/vuedoc-parser/internal/extract"
	"github.com/webfansplz/vuedoc-parser/internal/toon"
)

var version = "dev"

const defaultConfigPath = ".vuedoc.yml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args[1:]
	var err error
	if len(args) > 0 && args[0] == "init" {
		err = runInit(args[1:], os.Stdout, os.Stderr)
	} else {
		err = run(ctx, args, os.Stdout, os.Stderr)
	}
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// params are the command line settings of a run. Option flags left unset
// fall through to the config file.
type params struct {
	ConfigPath  string
	Format      string
	Jobs        int
	Verbose     bool
	Trace       bool
	Version     bool
	IncludeTest bool

	Features            string
	IgnoredVisibilities string
	VueVersion          int
	Encoding            string
	MaxFileSize         int64

	Paths []string

	set map[string]bool
}

func parseParams(args []string, stderr io.Writer) (*params, error) {
	fs := flag.NewFlagSet("vuedoc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var p params
	fs.StringVar(&p.ConfigPath, "config", defaultConfigPath, "YAML config file; missing means defaults")
	fs.StringVar(&p.Format, "f", "toon", "output format: toon or json")
	fs.StringVar(&p.Format, "format", "toon", "output format: toon or json")
	fs.IntVar(&p.Jobs, "j", runtime.GOMAXPROCS(0), "number of files parsed concurrently")
	fs.IntVar(&p.Jobs, "jobs", runtime.GOMAXPROCS(0), "number of files parsed concurrently")
	fs.BoolVar(&p.Verbose, "v", false, "log debug details to stderr")
	fs.BoolVar(&p.Verbose, "verbose", false, "log debug details to stderr")
	fs.BoolVar(&p.Trace, "trace", false, "export spans and metrics to stderr")
	fs.BoolVar(&p.Version, "V", false, "show version and exit")
	fs.BoolVar(&p.Version, "version", false, "show version and exit")
	fs.BoolVar(&p.IncludeTest, "include-tests", false, "document test and story files too")

	fs.StringVar(&p.Features, "features", "", "comma-separated features to extract")
	fs.StringVar(&p.IgnoredVisibilities, "ignored-visibilities", "", "comma-separated visibilities to drop")
	fs.IntVar(&p.VueVersion, "vue-version", 3, "v-model naming regime: 2 or 3")
	fs.StringVar(&p.Encoding, "encoding", config.DefaultEncoding, "encoding of component files")
	fs.Int64Var(&p.MaxFileSize, "max-file-size", config.DefaultMaxFileSize, "skip files larger than this many bytes")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: vuedoc [flags] [path ...]
       vuedoc init [flags] [config-path]

Document the class components found in each path. Directories are searched
for component files. Paths default to the current directory.

Every flag can also be set through a VUEDOC_ prefixed environment variable,
e.g. VUEDOC_VUE_VERSION=2.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := ff.Parse(fs, reorderArgs(args), ff.WithEnvVarPrefix("VUEDOC")); err != nil {
		return nil, err
	}

	p.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { p.set[f.Name] = true })

	p.Paths = fs.Args()
	if len(p.Paths) == 0 {
		p.Paths = []string{"."}
	}
	if p.Format != "toon" && p.Format != "json" {
		return nil, fmt.Errorf("unknown format %q", p.Format)
	}
	if p.Jobs < 1 {
		p.Jobs = 1
	}
	return &p, nil
}

// options loads the config file and applies the option flags set on the
// command line or in the environment.
func (p *params) options() (config.Options, error) {
	opts, err := config.Load(p.ConfigPath)
	if err != nil {
		return config.Options{}, err
	}
	if p.set["features"] {
		opts.Features = nil
		for _, f := range splitList(p.Features) {
			opts.Features = append(opts.Features, entry.Feature(f))
		}
	}
	if p.set["ignored-visibilities"] {
		opts.IgnoredVisibilities = nil
		for _, v := range splitList(p.IgnoredVisibilities) {
			opts.IgnoredVisibilities = append(opts.IgnoredVisibilities, entry.Visibility(v))
		}
	}
	if p.set["vue-version"] {
		opts.VueVersion = p.VueVersion
	}
	if p.set["encoding"] {
		opts.Encoding = p.Encoding
	}
	if p.set["max-file-size"] {
		opts.MaxFileSize = p.MaxFileSize
	}
	return opts, opts.Validate()
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	p, err := parseParams(args, stderr)
	if err != nil {
		return err
	}

	if p.Version {
		_, _ = fmt.Fprintf(stdout, "vuedoc %s\n", version)
		return nil
	}

	level := slog.LevelInfo
	if p.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if p.Trace {
		shutdown, terr := setupTelemetry(ctx, stderr)
		if terr != nil {
			return terr
		}
		defer func() {
			err = errors.Join(err, shutdown(context.Background()))
		}()
	}

	opts, err := p.options()
	if err != nil {
		return err
	}
	x, err := extract.New(opts, log)
	if err != nil {
		return err
	}

	files, err := collectFiles(p.Paths, x, p.IncludeTest)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no component files found (extensions: %s)", strings.Join(x.Extensions(), " "))
	}
	log.Debug("discovered files", "count", len(files))

	components, err := extractConcurrent(ctx, x, files, p.Jobs, log)
	if err != nil {
		return err
	}

	switch p.Format {
	case "json":
		if components == nil {
			components = []extract.Component{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return errtrace.Wrap(enc.Encode(components))
	default:
		_, _ = fmt.Fprintln(stdout, toon.Encode(components))
		return nil
	}
}

// sourceFile is a file to document: where to read it and how to name it.
type sourceFile struct {
	path string
	name string
}

// collectFiles expands directory arguments into their component files.
// File arguments are taken as given, even when their extension is not
// supported, so the failure is reported.
func collectFiles(paths []string, x *extract.Extractor, includeTests bool) ([]sourceFile, error) {
	var files []sourceFile
	for _, arg := range paths {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("path: %w", err))
		}
		if !info.IsDir() {
			files = append(files, sourceFile{path: arg, name: filepath.ToSlash(arg)})
			continue
		}

		found, err := discover.Files(arg, discover.Options{Supports: x.Supports, IncludeTests: includeTests})
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("discovering files in %s: %w", arg, err))
		}
		for _, f := range found {
			path := filepath.Join(arg, f.Path)
			files = append(files, sourceFile{path: path, name: filepath.ToSlash(path)})
		}
	}
	return files, nil
}

// extractConcurrent documents files with at most jobs in flight. Results
// keep the order of files. Per-file failures are logged and skipped; only
// cancellation aborts the run.
func extractConcurrent(ctx context.Context, x *extract.Extractor, files []sourceFile, jobs int, log *slog.Logger) ([]extract.Component, error) {
	results := make([][]extract.Component, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, f := range files {
		g.Go(func() error {
			components, err := x.ExtractFile(ctx, f.path, f.name)
			if err != nil {
				if ctx.Err() != nil {
					return errtrace.Wrap(ctx.Err())
				}
				log.Warn("skipped", "file", f.name, "error", err)
				return nil
			}
			results[i] = components
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []extract.Component
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-config": true, "--config": true,
	"-f": true, "--f": true,
	"-format": true, "--format": true,
	"-j": true, "--j": true,
	"-jobs": true, "--jobs": true,
	"-features": true, "--features": true,
	"-ignored-visibilities": true, "--ignored-visibilities": true,
	"-vue-version": true, "--vue-version": true,
	"-encoding": true, "--encoding": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
