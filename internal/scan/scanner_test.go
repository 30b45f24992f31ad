package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMinified(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "app.min.css", want: true},
		{path: "style-min.css", want: true},
		{path: "assets/app.min.css", want: true},
		{path: "app.css", want: false},
		{path: "min.css", want: false},
		{path: "minified.css", want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isMinified(tt.path), "isMinified(%q)", tt.path)
	}
}

func TestShouldSkipFile(t *testing.T) {
	assert.True(t, shouldSkipFile("/abs/app.min.css"))
	// Absolute paths never consult .gitignore.
	assert.False(t, shouldSkipFile("/abs/app.css"))
}

// writeTree lays out a fixture directory for discovery tests.
func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range map[string]string{
		"a.css":      ".a { color: red; }",
		"b.min.css":  ".b{color:blue}",
		"sub/c.css":  ".c { margin: 0; }",
		"notes.txt":  "not a stylesheet",
		"styles.css": ".d { padding: 0; }",
	} {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return dir
}

func TestDiscover(t *testing.T) {
	dir := writeTree(t)

	t.Run("directory argument expands the default includes", func(t *testing.T) {
		files, stats, err := Discover([]string{dir}, nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.css"),
			filepath.Join(dir, "styles.css"),
			filepath.Join(dir, "sub", "c.css"),
		}, files)
		assert.Equal(t, Stats{FilesDiscovered: 4, FilesScanned: 3, FilesSkipped: 1}, stats)
	})

	t.Run("explicitly named files bypass the filters", func(t *testing.T) {
		min := filepath.Join(dir, "b.min.css")
		files, stats, err := Discover([]string{min}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{min}, files)
		assert.Equal(t, Stats{FilesDiscovered: 1, FilesScanned: 1}, stats)
	})

	t.Run("repeated arguments are deduplicated", func(t *testing.T) {
		a := filepath.Join(dir, "a.css")
		files, stats, err := Discover([]string{a, a}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{a}, files)
		assert.Equal(t, 1, stats.FilesDiscovered)
	})

	t.Run("glob arguments filter minified files", func(t *testing.T) {
		files, stats, err := Discover([]string{filepath.Join(dir, "*.css")}, nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			filepath.Join(dir, "a.css"),
			filepath.Join(dir, "styles.css"),
		}, files)
		assert.Equal(t, Stats{FilesDiscovered: 3, FilesScanned: 2, FilesSkipped: 1}, stats)
	})

	t.Run("custom includes narrow a directory search", func(t *testing.T) {
		files, _, err := Discover([]string{dir}, []string{"sub/*.css"})
		require.NoError(t, err)

		assert.Equal(t, []string{filepath.Join(dir, "sub", "c.css")}, files)
	})

	t.Run("a pattern without matches yields nothing", func(t *testing.T) {
		files, stats, err := Discover([]string{filepath.Join(dir, "nope", "*.css")}, nil)
		require.NoError(t, err)

		assert.Empty(t, files)
		assert.Equal(t, Stats{}, stats)
	})

	t.Run("a malformed pattern surfaces as an error", func(t *testing.T) {
		_, _, err := Discover([]string{"["}, nil)
		require.Error(t, err)
		assert.ErrorContains(t, err, "glob pattern")
	})
}

func TestRun(t *testing.T) {
	upper := func(css string) (string, error) { return strings.ToUpper(css), nil }

	t.Run("keeps output without writing", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "in.css")
		require.NoError(t, os.WriteFile(path, []byte(".a{color:red}"), 0644))

		results, err := Run([]string{path}, upper, false, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)

		res := results[0]
		assert.Equal(t, path, res.Path)
		assert.Equal(t, len(".a{color:red}"), res.BytesIn)
		assert.Equal(t, ".A{COLOR:RED}", res.Output)
		assert.NoError(t, res.Err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ".a{color:red}", string(data), "file must stay untouched")
	})

	t.Run("rewrites changed files in place", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "in.css")
		require.NoError(t, os.WriteFile(path, []byte(".a{color:red}"), 0644))

		results, err := Run([]string{path}, upper, true, nil)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Output)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ".A{COLOR:RED}", string(data))
	})

	t.Run("records read failures and keeps going", func(t *testing.T) {
		dir := t.TempDir()
		good := filepath.Join(dir, "good.css")
		require.NoError(t, os.WriteFile(good, []byte(".a{}"), 0644))
		missing := filepath.Join(dir, "missing.css")

		results, err := Run([]string{missing, good}, upper, false, nil)
		require.Error(t, err)
		require.Len(t, results, 2)

		assert.ErrorIs(t, results[0].Err, os.ErrNotExist)
		assert.NoError(t, results[1].Err)
		assert.Equal(t, ".A{}", results[1].Output)
	})

	t.Run("transform failures carry the bare error, the aggregate names the file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.css")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		fail := func(string) (string, error) { return "", assert.AnError }
		results, err := Run([]string{path}, fail, false, nil)
		require.Error(t, err)
		require.Len(t, results, 1)

		assert.Equal(t, assert.AnError, results[0].Err)
		assert.ErrorContains(t, err, path+": ")
	})
}

func TestWriteOutput(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "nested", "file.css")
		require.NoError(t, WriteOutput(path, ".a{}"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ".a{}", string(data))
	})

	t.Run("bare filename writes into the working directory", func(t *testing.T) {
		dir := t.TempDir()
		old, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Chdir(old) })

		require.NoError(t, WriteOutput("plain.css", ".b{}"))

		data, err := os.ReadFile("plain.css")
		require.NoError(t, err)
		assert.Equal(t, ".b{}", string(data))
	})
}

func TestRelativePath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "a.css", RelativePath(filepath.Join(wd, "a.css")))
	assert.Equal(t, filepath.Join("sub", "a.css"), RelativePath(filepath.Join(wd, "sub", "a.css")))
}
