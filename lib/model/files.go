package model

import (
	"sort"
	"sync"

	"github.com/samber/lo"
)

type Keyed interface {
	GetKey() string
}

type FileRecord interface {
	Keyed
	GetLineCount() int
}

// FileSet indexes files by key. List always returns files sorted by key, which
// is what makes candidate indexes reproducible between runs.
type FileSet[F Keyed] struct {
	mutex sync.RWMutex
	byKey map[string]F
}

func NewFileSet[F Keyed](files ...F) *FileSet[F] {
	result := &FileSet[F]{
		byKey: make(map[string]F, len(files)),
	}

	for _, f := range files {
		result.byKey[f.GetKey()] = f
	}

	return result
}

func (fs *FileSet[F]) Add(file F) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	fs.byKey[file.GetKey()] = file
}

func (fs *FileSet[F]) Get(key string) (F, bool) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	f, ok := fs.byKey[key]
	return f, ok
}

func (fs *FileSet[F]) Contains(key string) bool {
	_, ok := fs.Get(key)
	return ok
}

func (fs *FileSet[F]) Size() int {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	return len(fs.byKey)
}

func (fs *FileSet[F]) List() []F {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	result := lo.Values(fs.byKey)

	sortByKey(result)

	return result
}

func (fs *FileSet[F]) Keys() []string {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	result := lo.Keys(fs.byKey)
	sort.Strings(result)
	return result
}

func sortByKey[F Keyed](result []F) {
	sort.Slice(result, func(i, j int) bool {
		return result[i].GetKey() < result[j].GetKey()
	})
}
