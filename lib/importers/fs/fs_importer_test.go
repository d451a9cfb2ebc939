package fs

import (
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/pescuma/movedetect/lib/consoles"
	"github.com/pescuma/movedetect/lib/importers/common"
	"github.com/pescuma/movedetect/lib/linehashes"
	"github.com/pescuma/movedetect/lib/model"
)

type FsImporterTests struct{}

func TestFsImporter(t *testing.T) {
	testgroup.RunInParallel(t, &FsImporterTests{})
}

func writeFiles(t *testgroup.T, files map[string]string) string {
	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t.T, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t.T, os.WriteFile(path, []byte(content), 0o600))
	}

	return dir
}

func importDir(t *testgroup.T, dir string, opts *Options) map[string]*model.ReportFile {
	files, err := NewImporter(consoles.NewRecordingConsole()).Import("proj", dir, opts)
	require.NoError(t.T, err)

	return lo.KeyBy(files, func(f *model.ReportFile) string { return f.Key })
}

func (g *FsImporterTests) ImportsTextFiles(t *testgroup.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":         "package a\n\nfunc A() {}\n",
		"lib/b.go":     "package lib",
		"lib/empty.go": "",
	})

	files := importDir(t, dir, &Options{})

	t.Len(files, 3)

	a := files["proj:a.go"]
	require.NotNil(t.T, a)
	t.Equal("a.go", a.Path)
	t.Equal("a.go", a.Ref)
	t.Equal(linehashes.HashText("package a\n\nfunc A() {}\n"), a.LineHashes)
	t.Equal(len(a.LineHashes), a.LineCount)

	b := files["proj:lib/b.go"]
	require.NotNil(t.T, b)
	t.Equal(1, b.LineCount)

	empty := files["proj:lib/empty.go"]
	require.NotNil(t.T, empty)
	t.True(empty.HasContent())
	t.Empty(empty.LineHashes)
}

func (g *FsImporterTests) SkipsBinaryHiddenAndBigFiles(t *testgroup.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":          "package a\n",
		"image.bin":     "\x00\x01\x02\x00",
		".hidden/x.go":  "package x\n",
		".env":          "A=1\n",
		"big.txt":       "0123456789\n0123456789\n",
		"vendor/v/v.go": "package v\n",
	})

	files := importDir(t, dir, &Options{FilterOptions: common.FilterOptions{MaxFileBytes: 15}})

	t.Equal([]string{"proj:a.go"}, lo.Keys(files))
}

func (g *FsImporterTests) RespectsGitIgnore(t *testgroup.T) {
	dir := writeFiles(t, map[string]string{
		".gitignore":  "build/\n*.log\n",
		"a.go":        "package a\n",
		"build/b.go":  "package b\n",
		"logs/x.log":  "x\n",
		"logs/y.text": "y\n",
	})

	files := importDir(t, dir, &Options{FilterOptions: common.FilterOptions{Gitignore: true}})
	t.ElementsMatch([]string{"proj:a.go", "proj:logs/y.text"}, lo.Keys(files))

	files = importDir(t, dir, &Options{FilterOptions: common.FilterOptions{Gitignore: false}})
	t.ElementsMatch([]string{"proj:a.go", "proj:build/b.go", "proj:logs/x.log", "proj:logs/y.text"}, lo.Keys(files))
}

func (g *FsImporterTests) IncludeAndExclude(t *testgroup.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":        "package a\n",
		"a_test.go":   "package a\n",
		"README.md":   "# a\n",
		"gen/g.go":    "package gen\n",
		"lib/deep.go": "package lib\n",
	})

	files := importDir(t, dir, &Options{FilterOptions: common.FilterOptions{
		Include: []string{"**.go"},
		Exclude: []string{"gen/**", "**/*_test.go"},
	}})

	t.ElementsMatch([]string{"proj:a.go", "proj:lib/deep.go"}, lo.Keys(files))
}

func (g *FsImporterTests) MissingDir(t *testgroup.T) {
	files, err := NewImporter(consoles.NewRecordingConsole()).Import("proj", filepath.Join(t.TempDir(), "none"), &Options{})

	require.NoError(t.T, err)
	t.Empty(files)
}

func (g *FsImporterTests) UnreadableFileHasNoContent(t *testgroup.T) {
	dir := writeFiles(t, map[string]string{
		"a.go":   "package a\n",
		"bad.go": "package bad\n",
	})

	console := consoles.NewRecordingConsole()
	importer := NewImporter(console)
	importer.readFile = func(path string) ([]byte, error) {
		if strings.HasSuffix(path, "bad.go") {
			return nil, errors.New("input/output error")
		}
		return os.ReadFile(path)
	}

	files, err := importer.Import("proj", dir, &Options{})
	require.NoError(t.T, err)

	byKey := lo.KeyBy(files, func(f *model.ReportFile) string { return f.Key })
	require.Len(t.T, byKey, 2)

	t.True(byKey["proj:a.go"].HasContent())

	bad := byKey["proj:bad.go"]
	require.NotNil(t.T, bad)
	t.False(bad.HasContent())
	t.Equal(0, bad.LineCount)
	t.Equal("bad.go", bad.Path)
	t.True(console.Contains("input/output error"))
}
