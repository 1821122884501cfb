package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jvmOptions = Options{
	MarkerFile: "package-info.java",
	Extensions: []string{".java", ".kt", ".scala", ".clj"},
}

// writeFiles creates each file (and its parents) under root.
func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("// Create a file"), 0o644))
	}
}

func makeDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0o755))
	}
}

// assertItemsMatch compares two item lists ignoring order, using
// filesystem identity for paths.
func assertItemsMatch(t *testing.T, want, got []Item) {
	t.Helper()
	require.Len(t, got, len(want), "got %+v", got)
	used := make([]bool, len(got))
	for _, w := range want {
		found := false
		for j, g := range got {
			if !used[j] && w.Equal(g) && w.HasMarker == g.HasMarker {
				used[j] = true
				found = true
				break
			}
		}
		assert.True(t, found, "missing item %+v in %+v", w, got)
	}
}

func TestScan_MixedTree(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/package-info.java", "a/b/package-info.java", "c/Main.java")
	makeDirs(t, root, "d/e", "f")

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)

	want := []Item{
		{Path: filepath.Join(root, "a") + "/", Package: "a", HasMarker: true, HasSource: true},
		{Path: filepath.Join(root, "a/b/"), Package: "a.b", HasMarker: true, HasSource: true},
		{Path: filepath.Join(root, "c"), Package: "c", HasSource: true},
		{Path: filepath.Join(root, "d"), Package: "d"},
		{Path: filepath.Join(root, "d", "..", "d", "e"), Package: "d.e"},
		{Path: filepath.Join(root, "f"), Package: "f"},
	}
	assertItemsMatch(t, want, items)

	missing := Missing(items)
	require.Len(t, missing, 1)
	assert.Equal(t, "c", missing[0].Package)
}

func TestScan_RootExcluded(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Root.java", "package-info.java")

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestScan_BreadthFirstOrder(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "x/y/z", "w")

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 4)

	depth := func(pkg string) int {
		n := 1
		for _, r := range pkg {
			if r == '.' {
				n++
			}
		}
		return n
	}
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, depth(items[i-1].Package), depth(items[i].Package),
			"%q emitted before %q", items[i-1].Package, items[i].Package)
	}
}

func TestScan_AbsolutePathsFromRelativeRoot(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "src/main")
	t.Chdir(root)

	items, err := New(jvmOptions).Scan("src")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, filepath.IsAbs(items[0].Path))
	assert.Equal(t, "main", items[0].Package)
}

func TestScan_SourceExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"java/A.java",
		"kotlin/B.kt",
		"scala/C.scala",
		"clojure/core.clj",
		"text/notes.txt",
		"groovy/D.groovy",
		"nested/inner/E.java",
	)

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)

	flags := make(map[string]bool)
	for _, it := range items {
		flags[it.Package] = it.HasSource
	}
	assert.Equal(t, map[string]bool{
		"java":         true,
		"kotlin":       true,
		"scala":        true,
		"clojure":      true,
		"text":         false,
		"groovy":       false,
		"nested":       false,
		"nested.inner": true,
	}, flags)
}

func TestScan_ConfigurableExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "groovy/D.groovy", "java/A.java")

	items, err := New(Options{MarkerFile: "package-info.java", Extensions: []string{".groovy"}}).Scan(root)
	require.NoError(t, err)

	sources := Sources(items)
	require.Len(t, sources, 1)
	assert.Equal(t, "groovy", sources[0].Package)
}

func TestScan_MarkerCountsAsSource(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "already/package-info.java")

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, items[0].HasMarker)
	assert.True(t, items[0].HasSource)
	assert.Empty(t, Missing(items))
	assert.Len(t, Sources(items), 1)
}

func TestScan_DanglingSymlinksAreNotFiles(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "pkg")
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "pkg", "package-info.java")))
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "pkg", "Ghost.kt")))

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.False(t, items[0].HasMarker)
	assert.False(t, items[0].HasSource)
}

func TestScan_SymlinkedFilesCount(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "shared/Real.java")
	makeDirs(t, root, "pkg")
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "Real.java"), filepath.Join(root, "pkg", "Linked.java")))

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)

	for _, it := range items {
		if it.Package == "pkg" {
			assert.True(t, it.HasSource)
			return
		}
	}
	t.Fatal("package pkg not scanned")
}

func TestScan_DirectoryNamedLikeSourceIgnored(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "pkg/Fake.java", "pkg/package-info.java")

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)

	for _, it := range items {
		if it.Package == "pkg" {
			assert.False(t, it.HasSource)
			assert.False(t, it.HasMarker)
			return
		}
	}
	t.Fatal("package pkg not scanned")
}

func TestScan_FollowsDirectorySymlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, outside, "Linked.java")
	makeDirs(t, root, "real")
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "real", "link")))

	items, err := New(jvmOptions).Scan(root)
	require.NoError(t, err)

	want := []Item{
		{Path: filepath.Join(root, "real"), Package: "real"},
		{Path: filepath.Join(root, "real", "link"), Package: "real.link", HasSource: true},
	}
	assertItemsMatch(t, want, items)
}

func TestScan_RootErrors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file.txt")

	_, err := New(jvmOptions).Scan(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(jvmOptions).Scan(filepath.Join(root, "file.txt"))
	assert.ErrorContains(t, err, "not a directory")
}

func TestItem_Equal(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "a/b", "c")

	base := Item{Path: filepath.Join(root, "a", "b"), Package: "a.b", HasSource: true}

	tests := []struct {
		name  string
		other Item
		want  bool
	}{
		{"same", base, true},
		{"trailing separator", Item{Path: filepath.Join(root, "a", "b") + "/", Package: "a.b", HasSource: true}, true},
		{"relative segments", Item{Path: root + "/c/../a/b", Package: "a.b", HasSource: true}, true},
		{"marker flag ignored", Item{Path: base.Path, Package: "a.b", HasSource: true, HasMarker: true}, true},
		{"other directory", Item{Path: filepath.Join(root, "c"), Package: "a.b", HasSource: true}, false},
		{"other package", Item{Path: base.Path, Package: "b", HasSource: true}, false},
		{"other source flag", Item{Path: base.Path, Package: "a.b"}, false},
		{"missing path", Item{Path: filepath.Join(root, "nope"), Package: "a.b", HasSource: true}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Equal(tc.other))
		})
	}
}

func TestFilters(t *testing.T) {
	items := []Item{
		{Package: "ok", HasSource: true, HasMarker: true},
		{Package: "missing", HasSource: true},
		{Package: "docs-only", HasMarker: true},
		{Package: "empty"},
	}

	var sources, missing []string
	for _, it := range Sources(items) {
		sources = append(sources, it.Package)
	}
	for _, it := range Missing(items) {
		missing = append(missing, it.Package)
	}

	assert.ElementsMatch(t, []string{"ok", "missing"}, sources)
	assert.Equal(t, []string{"missing"}, missing)
	assert.Empty(t, Missing(nil))
}
