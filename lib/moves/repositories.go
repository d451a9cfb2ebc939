package moves

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/pescuma/movedetect/lib/model"
)

type OriginalFile struct {
	Key  string
	UUID model.UUID
}

// MovedFilesRepository tells where a file of the report was moved from.
type MovedFilesRepository interface {
	GetOriginalFile(file *model.ReportFile) (OriginalFile, bool)
}

// AddedFileRepository knows which files of the report are new.
type AddedFileRepository interface {
	Register(file *model.ReportFile)
	IsAdded(file *model.ReportFile) bool
}

type MemoryMovedFilesRepository struct {
	mutex     sync.RWMutex
	originals map[string]OriginalFile
}

func NewMemoryMovedFilesRepository() *MemoryMovedFilesRepository {
	return &MemoryMovedFilesRepository{
		originals: map[string]OriginalFile{},
	}
}

func (r *MemoryMovedFilesRepository) SetOriginalFile(file *model.ReportFile, original OriginalFile) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if o, ok := r.originals[file.Key]; ok && o != original {
		return errors.Errorf("original file of %v already set to %v", file.Key, o.Key)
	}

	r.originals[file.Key] = original
	return nil
}

func (r *MemoryMovedFilesRepository) GetOriginalFile(file *model.ReportFile) (OriginalFile, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	o, ok := r.originals[file.Key]
	return o, ok
}

func (r *MemoryMovedFilesRepository) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.originals)
}

type MemoryAddedFileRepository struct {
	mutex sync.RWMutex
	added map[string]bool
}

func NewMemoryAddedFileRepository() *MemoryAddedFileRepository {
	return &MemoryAddedFileRepository{
		added: map[string]bool{},
	}
}

func (r *MemoryAddedFileRepository) Register(file *model.ReportFile) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.added[file.Key] = true
}

func (r *MemoryAddedFileRepository) IsAdded(file *model.ReportFile) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.added[file.Key]
}

func (r *MemoryAddedFileRepository) Size() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.added)
}
