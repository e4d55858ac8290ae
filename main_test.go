package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const counterVue = `<template>
  <button @click="increment">{{ count }}</button>
</template>

<script lang="ts">
import { Component, Prop, Vue } from 'vue-property-decorator'

/** Counts clicks. */
@Component
export default class Counter extends Vue {
  /** Initial value */
  @Prop({ default: 0 }) readonly start!: number

  count = this.start

  private secret = 1

  increment(): void {
    this.count++
  }
}
</script>
`

const badgeTS = `import { Component, Vue } from 'vue-property-decorator'

@Component({ name: 'app-badge' })
export default class Badge extends Vue {
  label = 'new'
}
`

func createSampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "src/Counter.vue", counterVue)
	writeTestFile(t, dir, "src/Badge.ts", badgeTS)
	writeTestFile(t, dir, "src/util.ts", "export const double = (n: number) => n * 2\n")
	writeTestFile(t, dir, "src/Counter.spec.ts", badgeTS)
	writeTestFile(t, dir, "README.md", "# sample\n")
	return dir
}

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunBasic(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, dir)
	require.NoError(t, err, stderr)

	assert.Contains(t, out, "components[2]{file,line,name,description}:")
	assert.Contains(t, out, "Badge.ts,4,app-badge")
	assert.Contains(t, out, "Counter.vue,10,Counter,Counts clicks.")
	assert.Contains(t, out, "props[1]")
	assert.Contains(t, out, "Initial value")
	assert.NotContains(t, out, "secret")
}

func TestRunJSON(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, "-format", "json", dir)
	require.NoError(t, err, stderr)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "app-badge", got[0]["name"])
	assert.Equal(t, "Counter", got[1]["name"])
	assert.Len(t, got[1]["methods"], 1)
}

func TestRunSingleFile(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, filepath.Join(dir, "src", "Badge.ts"))
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "components[1]")
	assert.Contains(t, out, "app-badge")
}

func TestRunIncludeTests(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, "-include-tests", dir)
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "components[3]")
	assert.Contains(t, out, "Counter.spec.ts")
}

func TestRunOptionFlags(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, dir, "-features", "props,data", "-ignored-visibilities", "")
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "props[1]")
	assert.Contains(t, out, "secret")
	assert.NotContains(t, out, "methods[")
	assert.NotContains(t, out, "Counts clicks.")
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)
	writeTestFile(t, dir, "vuedoc.yml", "features: [methods]\nloaders:\n  - extensions: [.vue3]\n    language: vue\n")
	writeTestFile(t, dir, "src/Extra.vue3", counterVue)

	out, stderr, err := runArgs(t, "-config", filepath.Join(dir, "vuedoc.yml"), filepath.Join(dir, "src"))
	require.NoError(t, err, stderr)
	assert.Contains(t, out, "components[3]")
	assert.Contains(t, out, "methods[2]")
	assert.NotContains(t, out, "props[")
}

func TestRunInvalidConfig(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)
	writeTestFile(t, dir, "vuedoc.yml", "vueVersion: 4\n")

	_, _, err := runArgs(t, "-config", filepath.Join(dir, "vuedoc.yml"), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VueVersion")
}

func TestRunInvalidFlagValue(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	_, _, err := runArgs(t, "-features", "props,colors", dir)
	require.Error(t, err)

	_, _, err = runArgs(t, "-format", "xml", dir)
	require.Error(t, err)
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	out, _, err := runArgs(t, "-V")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "vuedoc "), out)
}

func TestRunNoFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeTestFile(t, dir, "readme.txt", "nothing here")

	_, _, err := runArgs(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no component files found")
}

func TestRunMissingPath(t *testing.T) {
	t.Parallel()

	_, _, err := runArgs(t, filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunSkipsFailedFiles(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)
	writeTestFile(t, dir, "src/Legacy.vue", `<script lang="coffee">x = 1</script>`)

	out, stderr, err := runArgs(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "components[2]")
	assert.Contains(t, stderr, "Legacy.vue")
	assert.Contains(t, stderr, "level=WARN")
}

func TestRunMaxFileSize(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	out, stderr, err := runArgs(t, "-max-file-size", "200", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "components[1]")
	assert.Contains(t, out, "app-badge")
	assert.Contains(t, stderr, "Counter.vue")
}

func TestRunSequential(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	parallel, _, err := runArgs(t, dir)
	require.NoError(t, err)
	sequential, _, err := runArgs(t, "-j", "1", dir)
	require.NoError(t, err)
	assert.Equal(t, parallel, sequential)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{dir}, &stdout, &stderr)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stdout.String())
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"props", "data"}, splitList(" props, ,data "))
	assert.Nil(t, splitList(""))
}

func TestReorderArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"flags first", []string{"-j", "5", "."}, []string{"-j", "5", "."}},
		{"positional first", []string{".", "-j", "5"}, []string{"-j", "5", "."}},
		{"mixed", []string{"-features", "props", ".", "-format", "json"}, []string{"-features", "props", "-format", "json", "."}},
		{"many paths", []string{"a", "-vue-version", "2", "b"}, []string{"-vue-version", "2", "a", "b"}},
		{"no flags", []string{"."}, []string{"."}},
		{"no args", nil, nil},
		{"bool flag", []string{"-V"}, []string{"-V"}},
		{"terminator", []string{"-v", "--", "x"}, []string{"-v", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reorderArgs(tt.in))
		})
	}
}
