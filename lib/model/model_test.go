package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSetListIsSortedByKey(t *testing.T) {
	t.Parallel()

	fs := NewFileSet(NewDbFile("p:c", "3"), NewDbFile("p:a", "1"))
	fs.Add(NewDbFile("p:b", "2"))

	keys := make([]string, 0, 3)
	for _, f := range fs.List() {
		keys = append(keys, f.Key)
	}

	assert.Equal(t, []string{"p:a", "p:b", "p:c"}, keys)
	assert.Equal(t, []string{"p:a", "p:b", "p:c"}, fs.Keys())
	assert.Equal(t, 3, fs.Size())
	assert.True(t, fs.Contains("p:b"))
	assert.False(t, fs.Contains("p:d"))
}

func TestFileKeyNormalizesPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "proj:src/a.go", FileKey("proj", "./src//a.go"))
	assert.Equal(t, "proj:src/a.go", FileKey("proj", "/src/a.go"))
	// "é" decomposed and composed forms produce the same key
	assert.Equal(t, FileKey("proj", "caf\u00e9.go"), FileKey("proj", "cafe\u0301.go"))
	assert.Equal(t, "src/a.go", RelativePath("proj", "proj:src/a.go"))
}

func TestHasContent(t *testing.T) {
	t.Parallel()

	f := NewReportFile("p:a", "1")
	assert.False(t, f.HasContent())

	f.LineHashes = []string{}
	assert.True(t, f.HasContent())
}

func TestGetLineCount(t *testing.T) {
	t.Parallel()

	f := NewDbFile("p:a", "u")
	assert.Equal(t, 0, f.GetLineCount())

	f.LineHashes = []string{"a", "b", ""}
	assert.Equal(t, 3, f.GetLineCount())

	f.LineCount = 10
	assert.Equal(t, 10, f.GetLineCount())
}

func TestNewUUIDIsUnique(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, NewUUID(), NewUUID())
}

func TestEmptyKeyPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewDbFile("", "1") })
}
