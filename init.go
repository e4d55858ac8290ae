package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/webfansplz/vuedoc-parser/internal/config"
)

const configHeader = `# vuedoc configuration.
#
# features: sections to extract (name description keywords slots props data
#   computed events methods model). Empty extracts everything.
# ignoredVisibilities: drop entries with these visibilities.
# loaders: map extra extensions onto typescript, tsx, javascript or vue.
# vueVersion: 2 names v-model value/input, 3 names it modelValue.
`

// runInit implements the `vuedoc init` subcommand, which writes (or updates)
// a config file holding every option with its effective value.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vuedoc init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: vuedoc init [flags] [config-path]

Write a vuedoc config file. Values already present in the file are kept and
missing options are filled with their defaults. Creates the file if it does
not exist.

config-path defaults to ./%s.

Flags:
`, defaultConfigPath)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := defaultConfigPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	updated, err := applyConfig(existing)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if dryRun {
		_, _ = stdout.Write(updated)
		return nil
	}

	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote vuedoc config to %s\n", path)
	return nil
}

// applyConfig merges existing config content over the defaults and renders
// the result. Invalid existing content is an error rather than being
// overwritten. It is a pure function for easy testing.
func applyConfig(existing []byte) ([]byte, error) {
	opts, err := config.Decode(bytes.NewReader(existing))
	if err != nil {
		return nil, err
	}
	body, err := config.Marshal(opts)
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader), body...), nil
}
