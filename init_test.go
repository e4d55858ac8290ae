package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webfansplz/vuedoc-parser/internal/config"
)

// TestApplyConfigCreate verifies that empty content renders every default.
func TestApplyConfigCreate(t *testing.T) {
	t.Parallel()

	got, err := applyConfig(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), configHeader))

	opts, err := config.Decode(bytes.NewReader(got))
	require.NoError(t, err)
	def := config.Default()
	assert.Equal(t, def.Features, opts.Features)
	assert.Equal(t, def.IgnoredVisibilities, opts.IgnoredVisibilities)
	assert.Equal(t, def.VueVersion, opts.VueVersion)
	assert.Equal(t, def.Encoding, opts.Encoding)
	assert.Equal(t, def.MaxFileSize, opts.MaxFileSize)
	assert.Empty(t, opts.Loaders)
}

// TestApplyConfigKeepsValues verifies that existing settings survive and
// missing ones are filled in.
func TestApplyConfigKeepsValues(t *testing.T) {
	t.Parallel()

	got, err := applyConfig([]byte("vueVersion: 2\nfeatures: [props]\n"))
	require.NoError(t, err)

	opts, err := config.Decode(bytes.NewReader(got))
	require.NoError(t, err)
	assert.Equal(t, 2, opts.VueVersion)
	assert.Len(t, opts.Features, 1)
	assert.Equal(t, config.DefaultEncoding, opts.Encoding)
	assert.Contains(t, string(got), "maxFileSize:")
}

// TestApplyConfigRejectsInvalid verifies that a broken file is reported
// instead of being replaced.
func TestApplyConfigRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := applyConfig([]byte("colour: blue\n"))
	assert.Error(t, err)

	_, err = applyConfig([]byte("vueVersion: 5\n"))
	assert.Error(t, err)
}

func TestInitCreatesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "vuedoc.yml")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runInit([]string{path}, &stdout, &stderr))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vueVersion: 3")
	assert.Contains(t, stderr.String(), "wrote vuedoc config")
	assert.Empty(t, stdout.String())
}

func TestInitDryRun(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "vuedoc.yml")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runInit([]string{"-dry-run", path}, &stdout, &stderr))

	assert.Contains(t, stdout.String(), "encoding: utf-8")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "dry run must not create the file")
}

func TestInitIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "vuedoc.yml")
	require.NoError(t, os.WriteFile(path, []byte("ignoredVisibilities: []\n"), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, runInit([]string{path}, &stdout, &stderr))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, runInit([]string{path}, &stdout, &stderr))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Contains(t, string(second), "ignoredVisibilities: []")
}

func TestInitInvalidExisting(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "vuedoc.yml")
	require.NoError(t, os.WriteFile(path, []byte("vueVersion: [\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := runInit([]string{path}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "vueVersion: [\n", string(data))
}

// TestInitOutputUsableByRun verifies that a generated config drives a run.
func TestInitOutputUsableByRun(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)
	path := filepath.Join(dir, "vuedoc.yml")

	var stdout, stderr bytes.Buffer
	require.NoError(t, runInit([]string{path}, &stdout, &stderr))

	out, errOut, err := runArgs(t, "-config", path, dir)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "components[2]")
}
