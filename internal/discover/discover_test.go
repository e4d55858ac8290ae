package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func components(path string) bool {
	switch filepath.Ext(path) {
	case ".vue", ".ts", ".js":
		return true
	}
	return false
}

func paths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = filepath.ToSlash(e.Path)
	}
	return out
}

func TestDiscoverComponentFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "src/App.vue", "<template/>")
	writeFile(t, dir, "src/components/Button.ts", "export default class Button {}")
	writeFile(t, dir, "readme.md", "hello")
	writeFile(t, dir, ".eslintrc.js", "module.exports = {}")

	entries, err := Files(dir, Options{Supports: components})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/App.vue", "src/components/Button.ts"}, paths(entries))
}

func TestDiscoverSkipDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "App.vue", "")
	writeFile(t, dir, "node_modules/pkg/index.js", "")
	writeFile(t, dir, "dist/app.js", "")
	writeFile(t, dir, ".nuxt/App.vue", "")

	entries, err := Files(dir, Options{Supports: components})
	require.NoError(t, err)
	assert.Equal(t, []string{"App.vue"}, paths(entries))
}

func TestDiscoverGitignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated/\n*.gen.ts\n")
	writeFile(t, dir, "App.vue", "")
	writeFile(t, dir, "generated/Api.ts", "")
	writeFile(t, dir, "types.gen.ts", "")

	entries, err := Files(dir, Options{Supports: components})
	require.NoError(t, err)
	assert.Equal(t, []string{"App.vue"}, paths(entries))
}

func TestDiscoverTests(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Button.vue", "")
	writeFile(t, dir, "Button.spec.ts", "")
	writeFile(t, dir, "__tests__/Button.ts", "")

	entries, err := Files(dir, Options{Supports: components})
	require.NoError(t, err)
	assert.Equal(t, []string{"Button.vue"}, paths(entries))

	entries, err = Files(dir, Options{Supports: components, IncludeTests: true})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestDiscoverSymlinksSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "Real.vue", "")

	if err := os.Symlink(filepath.Join(dir, "Real.vue"), filepath.Join(dir, "Link.vue")); err != nil {
		t.Skip("symlinks not supported")
	}

	entries, err := Files(dir, Options{Supports: components})
	require.NoError(t, err)
	assert.Equal(t, []string{"Real.vue"}, paths(entries))
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want bool
	}{
		{"tests/unit/Button.ts", true},
		{"src/__tests__/Button.js", true},
		{"e2e/login.ts", true},
		{"Button.spec.ts", true},
		{"Button.test.js", true},
		{"Button.stories.ts", true},
		{"src/components/Button.vue", false},
		{"src/testing/helpers.ts", false},
		{"src/latest.ts", false},
	}
	for _, tc := range cases {
		t.Run(strings.ReplaceAll(tc.path, "/", "_"), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsTestFile(tc.path))
		})
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
