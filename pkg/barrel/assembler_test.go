package barrel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"autobarrel/pkg/discovery"
	"autobarrel/pkg/errors"
	"autobarrel/pkg/exports"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func testOptions(detect bool) Options {
	format := exports.DefaultFormatOptions()
	format.UseNamedExports = true
	return Options{
		Discovery: discovery.Options{
			IncludePatterns: discovery.ExtensionPatterns([]string{"ts", "tsx", "vue"}, true),
			ExcludePatterns: []string{"**/*.spec.*", "**/*.test.*", "**/index.ts", "**/index.js"},
			Recursive:       true,
		},
		Format:          format,
		DetectExports:   detect,
		MaxWorkers:      4,
		DefaultFilename: "index",
		Language:        "TypeScript",
	}
}

func scenarioFolder(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.ts": "export default function a(){}",
		"b.ts": "export const b = 1;",
	})
	return root
}

func TestBuildDetectExports(t *testing.T) {
	root := scenarioFolder(t)
	a := NewAssembler(testOptions(true), zaptest.NewLogger(t))

	out, err := a.Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "export { default as a } from './a';\nexport { b } from './b';\n", out)
}

func TestBuildWholesale(t *testing.T) {
	root := scenarioFolder(t)
	a := NewAssembler(testOptions(false), zaptest.NewLogger(t))

	out, err := a.Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "export * from './a';\nexport * from './b';\n", out)
}

func TestBuildEmptyFolder(t *testing.T) {
	a := NewAssembler(testOptions(true), zaptest.NewLogger(t))

	out, err := a.Build(context.Background(), t.TempDir())
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, errors.ErrNoFiles))
	assert.False(t, errors.Is(err, errors.ErrDiscovery))
}

func TestBuildDiscoveryFailureIsNoFiles(t *testing.T) {
	a := NewAssembler(testOptions(true), zaptest.NewLogger(t))

	_, err := a.Build(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, errors.ErrNoFiles))
	assert.True(t, errors.Is(err, errors.ErrDiscovery))
}

func TestBuildHeaderAndNewlines(t *testing.T) {
	root := scenarioFolder(t)
	opts := testOptions(false)
	opts.Format.HeaderLines = []string{"// generated", "// do not edit"}
	opts.Format.Newline = "\r\n"
	opts.Format.Semicolon = false
	opts.Format.QuoteChar = `"`

	out, err := NewAssembler(opts, zaptest.NewLogger(t)).Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t,
		"// generated\r\n// do not edit\r\n\r\nexport * from \"./a\"\r\nexport * from \"./b\"\r\n", out)

	opts.Format.InsertFinalNewline = false
	out, err = NewAssembler(opts, zaptest.NewLogger(t)).Build(context.Background(), root)
	require.NoError(t, err)
	assert.False(t, strings.HasSuffix(out, "\r\n"))
}

func TestBuildBlankHeaderLine(t *testing.T) {
	root := scenarioFolder(t)
	opts := testOptions(false)
	opts.Format.HeaderLines = []string{""}

	out, err := NewAssembler(opts, zaptest.NewLogger(t)).Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "\n\nexport * from './a';\nexport * from './b';\n", out)
}

func TestBuildSkipsFilesWithoutExports(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.ts":      "const internal = 1;",
		"b.ts":      "export const b = 1;",
		"c.ts":      "export * from './other';",
		"types.ts":  "export interface Foo {}\nexport const bar = 2;",
		"index.ts":  "export * from './b';",
		"b.spec.ts": "export const spec = true;",
	})

	out, err := NewAssembler(testOptions(true), zaptest.NewLogger(t)).Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "export { b } from './b';\nexport { type Foo, bar } from './types';\n", out)
}

func TestBuildProperties(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"z.ts":            "export const z = 1;",
		"m/inner.ts":      "const hidden = 1;",
		"m/deep/a.tsx":    "export default class A {}",
		"b.vue":           "export { x, y as z };",
		"components/c.ts": "export function c() {}",
	}
	writeFiles(t, root, files)

	t.Run("line count", func(t *testing.T) {
		for _, detect := range []bool{true, false} {
			out, err := NewAssembler(testOptions(detect), zaptest.NewLogger(t)).Build(context.Background(), root)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			if detect {
				assert.LessOrEqual(t, len(lines), len(files))
			} else {
				assert.Len(t, lines, len(files))
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a := NewAssembler(testOptions(true), zaptest.NewLogger(t))
		first, err := a.Build(context.Background(), root)
		require.NoError(t, err)
		second, err := a.Build(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("ordered by path", func(t *testing.T) {
		out, err := NewAssembler(testOptions(false), zaptest.NewLogger(t)).Build(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, strings.Join([]string{
			"export * from './b';",
			"export * from './components/c';",
			"export * from './m/deep/a';",
			"export * from './m/inner';",
			"export * from './z';",
		}, "\n")+"\n", out)
	})
}

// gatedReader releases reads in a fixed order so that completion order
// differs from discovery order.
type gatedReader struct {
	mu      sync.Mutex
	texts   map[string]string
	gate    map[string]chan struct{}
	release []string
	order   []string
}

func (r *gatedReader) ReadText(path string) (string, error) {
	<-r.gate[path]
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, path)
	if len(r.order) < len(r.release) {
		close(r.gate[r.release[len(r.order)]])
	}
	return r.texts[path], nil
}

func TestBuildOrderIndependentOfReadCompletion(t *testing.T) {
	root := t.TempDir()
	names := []string{"a", "b", "c", "d"}
	reader := &gatedReader{texts: map[string]string{}, gate: map[string]chan struct{}{}}
	for _, n := range names {
		writeFiles(t, root, map[string]string{n + ".ts": ""})
		path := filepath.Join(root, n+".ts")
		reader.texts[path] = "export const " + n + " = 1;"
		reader.gate[path] = make(chan struct{})
		reader.release = append([]string{path}, reader.release...)
	}
	close(reader.gate[reader.release[0]])

	a := NewAssembler(testOptions(true), zaptest.NewLogger(t))
	a.Reader = reader

	out, err := a.Build(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t,
		"export { a } from './a';\nexport { b } from './b';\nexport { c } from './c';\nexport { d } from './d';\n", out)
	assert.Equal(t, filepath.Join(root, "d.ts"), reader.order[0])
	assert.Equal(t, filepath.Join(root, "a.ts"), reader.order[3])
}

type failingReader struct{}

func (failingReader) ReadText(path string) (string, error) {
	return "", errors.Newf("permission denied: %s", path)
}

func TestBuildReadFailure(t *testing.T) {
	root := scenarioFolder(t)
	a := NewAssembler(testOptions(true), zaptest.NewLogger(t))
	a.Reader = failingReader{}

	_, err := a.Build(context.Background(), root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.False(t, errors.Is(err, errors.ErrNoFiles))
}

func TestBuildCanceled(t *testing.T) {
	root := scenarioFolder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssembler(testOptions(true), zaptest.NewLogger(t)).Build(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderWithoutExportLines(t *testing.T) {
	opts := exports.DefaultFormatOptions()
	doc := Document{HeaderLines: []string{"// header"}}
	assert.Equal(t, "// header\n\n\n", doc.Render(opts))
	assert.Equal(t, "", Document{}.Render(exports.FormatOptions{}))
	assert.Equal(t, "\n\n", Document{HeaderLines: []string{""}}.Render(exports.FormatOptions{}))
}

func TestBarrelFileName(t *testing.T) {
	assert.Equal(t, "index.ts", Options{Language: "TypeScript"}.BarrelFileName())
	assert.Equal(t, "index.js", Options{Language: "JavaScript"}.BarrelFileName())
	assert.Equal(t, "barrel.ts", Options{DefaultFilename: "barrel", Language: "typescript"}.BarrelFileName())
}
